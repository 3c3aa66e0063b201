package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Activate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Activation token is required.",
			"requestID": requestID,
		})
		return
	}

	err := d.Accounts.Activate(token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Invalid token. Please request a new confirmation link.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Confirmation link expired. Please request a new one.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAlreadyConfirmed):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "This account is already confirmed.",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Something went wrong on our servers.",
				"requestID": requestID,
			})

			zap.L().Error("Activation failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Thanks for confirming. Your account is activated.",
		"requestID": requestID,
	})
}
