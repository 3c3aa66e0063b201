package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resendBody struct {
	Username string `json:"username"`
}

func ResendActivation(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include username in POST body.",
			"requestID": requestID,
		})
		return
	}

	err := d.Accounts.ResendActivation(data.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "User not found.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAlreadyConfirmed):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "This account is already confirmed.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrDelivery):
			// The freshly issued token stays valid even though the mail
			// didn't go out.
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Error resending activation email.",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Something went wrong on our servers.",
				"requestID": requestID,
			})

			zap.L().Error("Activation resend failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Successfully sent! Please check your email.",
		"requestID": requestID,
	})
}
