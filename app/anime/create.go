package anime

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

type animeBody struct {
	Title            string   `json:"title"`
	Rating           float64  `json:"rating"`
	Release          string   `json:"release"`
	Status           string   `json:"status"`
	Synopsis         string   `json:"synopsis"`
	NumberOfEpisodes int      `json:"number_of_episodes"`
	PosterURI        string   `json:"poster_uri"`
	Genres           []string `json:"genres"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data animeBody
	if err := c.ShouldBind(&data); err != nil || data.Title == "" || data.Synopsis == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	anime := model.Anime{
		ID:               uuid.NewString(),
		Title:            data.Title,
		Rating:           data.Rating,
		Release:          data.Release,
		Status:           data.Status,
		Synopsis:         data.Synopsis,
		NumberOfEpisodes: data.NumberOfEpisodes,
		PosterURI:        data.PosterURI,
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := attachGenres(tx, &anime, data.Genres); err != nil {
			return err
		}

		return tx.Create(&anime).Error
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

		zap.L().Error("Failed to create anime", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Anime created.",
		"anime_id":  anime.ID,
		"requestID": requestID,
	})
}

// attachGenres resolves genre names to rows, creating missing ones on the
// fly like the catalog editors expect.
func attachGenres(tx *gorm.DB, anime *model.Anime, names []string) error {
	for _, name := range names {
		var g model.Genre

		err := tx.Where("name = ?", name).First(&g).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g = model.Genre{Name: name}
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		anime.Genres = append(anime.Genres, g)
	}

	return nil
}
