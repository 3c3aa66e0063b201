package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/pkg/middleware"
	"myannime/catalog-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updatePasswordBody struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func UpdatePassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	var data updatePasswordBody
	if err := c.ShouldBind(&data); err != nil || data.OldPassword == "" || data.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include old_password and new_password in the request body.",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := d.Accounts.ChangePassword(identity.Username, data.OldPassword, data.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncorrectOldPassword):
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":   "The old password you provided is incorrect.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "User not found.",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Something went wrong on our servers.",
				"requestID": requestID,
			})

			zap.L().Error("Password change failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Your password has been updated.",
		"requestID": requestID,
	})
}
