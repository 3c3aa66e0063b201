package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

func RequestPasswordReset(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include email in POST body.",
			"requestID": requestID,
		})
		return
	}

	token, err := d.Accounts.RequestPasswordReset(data.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "No account matches that email address.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrInactiveAccount):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Your account is not active yet. Please activate your account first.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Failed to send the password reset email. Please try again.",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Something went wrong on our servers.",
				"requestID": requestID,
			})

			zap.L().Error("Password reset request failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	// Token echoed for dev and testing convenience.
	c.JSON(http.StatusOK, gin.H{
		"message":   "A password reset email has been sent to your email address.",
		"token":     token,
		"requestID": requestID,
	})
}
