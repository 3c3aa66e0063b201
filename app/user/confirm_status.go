package user

import (
	"errors"
	"net/http"
	"time"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfirmStatus exposes an account's confirmation history to operators.
// Useful when support needs to tell a pending token from an expired one.
func ConfirmStatus(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if !middleware.GetIdentity(c).Elevated() {
		c.JSON(http.StatusForbidden, gin.H{
			"message":   "You are not allowed to access this resource. That's all we know.",
			"requestID": requestID,
		})
		return
	}

	username := c.Param("username")

	u, confirmations, err := d.Accounts.ConfirmationStatus(username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "User not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch confirmation history", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      u.Username,
		"current_time":  time.Now().Unix(),
		"confirmations": confirmations,
	})
}
