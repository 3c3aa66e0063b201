package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Info(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	u, err := d.Users.FindByUsername(identity.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
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

		zap.L().Error("Failed to fetch user info", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	saved, err := d.Users.SavedAnimes(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch saved animes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           u.ID,
		"name":         u.Name,
		"username":     u.Username,
		"email":        u.Email,
		"joined":       u.Joined,
		"saved_animes": saved,
	})
}
