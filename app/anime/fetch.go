package anime

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var anime model.Anime
	err := d.DB.
		Preload("Episodes").
		Preload("Genres").
		Where("id = ?", c.Param("id")).
		First(&anime).
		Error
	if err != nil {
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

	c.JSON(http.StatusOK, anime)
}
