// Package genre contains the read-only genre handlers
package genre

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var genres []model.Genre
	if err := d.DB.Order("name").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list genres", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// Fetch returns a genre and the animes tagged with it.
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var g model.Genre
	if err := d.DB.Where("name = ?", c.Param("name")).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Genre not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch genre", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var animes []model.Anime
	err := d.DB.Model(&model.Anime{}).
		Select("animes.id", "animes.title", "animes.poster_uri", "animes.rating").
		Joins("JOIN anime_genres ON anime_genres.anime_id = animes.id").
		Where("anime_genres.genre_id = ?", g.ID).
		Order("animes.title").
		Find(&animes).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list genre animes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"genre":  g,
		"animes": animes,
	})
}
