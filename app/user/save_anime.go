package user

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type saveAnimeBody struct {
	AnimeID string `json:"anime_id"`
}

// SaveAnime adds an anime to the caller's collection; RemoveAnime takes it
// back out. Both resolve the caller from the session token subject.
func SaveAnime(c *gin.Context, d *internal.Deps) {
	modifyCollection(c, d, d.Users.SaveAnime, "Anime saved to your collection.")
}

func RemoveAnime(c *gin.Context, d *internal.Deps) {
	modifyCollection(c, d, d.Users.RemoveAnime, "Anime removed from your collection.")
}

func modifyCollection(c *gin.Context, d *internal.Deps, op func(*model.User, *model.Anime) error, success string) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	var data saveAnimeBody
	if err := c.ShouldBind(&data); err != nil || data.AnimeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Please include anime_id in the request body.",
			"requestID": requestID,
		})
		return
	}

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

		zap.L().Error("Failed to resolve user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var anime model.Anime
	if err := d.DB.Where("id = ?", data.AnimeID).First(&anime).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Anime not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch anime", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := op(u, &anime); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update collection", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   success,
		"requestID": requestID,
	})
}
