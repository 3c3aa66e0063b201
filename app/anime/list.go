// Package anime contains the catalog handlers for anime entries
package anime

import (
	"net/http"
	"strconv"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pageSize = 24

type listEntry struct {
	ID        string  `json:"anime_id"`
	Title     string  `json:"title"`
	PosterURI string  `json:"poster_uri"`
	Rating    float64 `json:"rating"`
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	sort := c.DefaultQuery("sort", "title")
	switch sort {
	case "title", "rating", "release":
	default:
		sort = "title"
	}

	var entries []listEntry

	err = d.DB.Model(&model.Anime{}).
		Select("id", "title", "poster_uri", "rating").
		Order(sort).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list animes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":   page,
		"animes": entries,
	})
}
