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

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data animeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	var anime model.Anime
	if err := d.DB.Where("id = ?", c.Param("id")).First(&anime).Error; err != nil {
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

	if data.Title != "" {
		anime.Title = data.Title
	}
	if data.Release != "" {
		anime.Release = data.Release
	}
	if data.Status != "" {
		anime.Status = data.Status
	}
	if data.Synopsis != "" {
		anime.Synopsis = data.Synopsis
	}
	if data.PosterURI != "" {
		anime.PosterURI = data.PosterURI
	}
	if data.Rating > 0 {
		anime.Rating = data.Rating
	}
	if data.NumberOfEpisodes > 0 {
		anime.NumberOfEpisodes = data.NumberOfEpisodes
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if len(data.Genres) > 0 {
			anime.Genres = nil
			if err := attachGenres(tx, &anime, data.Genres); err != nil {
				return err
			}

			if err := tx.Model(&anime).Association("Genres").Replace(anime.Genres); err != nil {
				return err
			}
		}

		return tx.Save(&anime).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"message":   "An anime with that title already exists.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update anime", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Anime updated.",
		"requestID": requestID,
	})
}
