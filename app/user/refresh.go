package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func Refresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data refreshBody
	if err := c.ShouldBind(&data); err != nil || data.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include refresh_token in POST body.",
			"requestID": requestID,
		})
		return
	}

	access, expiresIn, err := d.Auth.Refresh(data.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":   "Refresh token invalid or expired. Please log in again.",
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

			zap.L().Error("Token refresh failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": access,
		"expires_in":   expiresIn,
	})
}
