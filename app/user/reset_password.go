package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPasswordBody struct {
	NewPassword string `json:"new_password"`
}

func ResetPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message":   "Password reset token is required.",
			"requestID": requestID,
		})
		return
	}

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil || data.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include new_password in POST body.",
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

	err := d.Accounts.CompletePasswordReset(token, data.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":   "Invalid password reset token. Please request a new one.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Password reset link expired. Please request a new one.",
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

			zap.L().Error("Password reset failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Your password has been updated. You can now log in.",
		"requestID": requestID,
	})
}
