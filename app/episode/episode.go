// Package episode contains the catalog handlers for episodes
package episode

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type episodeBody struct {
	EpisodeNumber int    `json:"episode_number"`
	EpisodeURI1   string `json:"episode_uri_1"`
	EpisodeURI2   string `json:"episode_uri_2"`
	EpisodeURI3   string `json:"episode_uri_3"`
	EpisodeURI4   string `json:"episode_uri_4"`
	AnimeID       string `json:"anime_id"`
}

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var ep model.Episode
	if err := d.DB.Where("id = ?", c.Param("id")).First(&ep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Episode not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch episode", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, ep)
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data episodeBody
	if err := c.ShouldBind(&data); err != nil || data.AnimeID == "" || data.EpisodeNumber < 1 || data.EpisodeURI1 == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
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

	ep := model.Episode{
		ID:            uuid.NewString(),
		EpisodeNumber: data.EpisodeNumber,
		EpisodeURI1:   data.EpisodeURI1,
		EpisodeURI2:   data.EpisodeURI2,
		EpisodeURI3:   data.EpisodeURI3,
		EpisodeURI4:   data.EpisodeURI4,
		AnimeID:       anime.ID,
	}

	if err := d.DB.Create(&ep).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create episode", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Episode created.",
		"episode_id": ep.ID,
		"requestID":  requestID,
	})
}

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data episodeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	var ep model.Episode
	if err := d.DB.Where("id = ?", c.Param("id")).First(&ep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Episode not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch episode", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.EpisodeNumber > 0 {
		ep.EpisodeNumber = data.EpisodeNumber
	}
	if data.EpisodeURI1 != "" {
		ep.EpisodeURI1 = data.EpisodeURI1
	}
	if data.EpisodeURI2 != "" {
		ep.EpisodeURI2 = data.EpisodeURI2
	}
	if data.EpisodeURI3 != "" {
		ep.EpisodeURI3 = data.EpisodeURI3
	}
	if data.EpisodeURI4 != "" {
		ep.EpisodeURI4 = data.EpisodeURI4
	}

	if err := d.DB.Save(&ep).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update episode", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Episode updated.",
		"requestID": requestID,
	})
}
