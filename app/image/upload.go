// Package image handles poster and thumbnail uploads to the S3 bucket.
package image

import (
	"net/http"
	"path/filepath"
	"strings"

	"myannime/catalog-api/internal"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Upload accepts a multipart image and returns its public URI.
func Upload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if d.S3 == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message":   "Image uploads are disabled on this server.",
			"requestID": requestID,
		})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "No image attached.",
			"requestID": requestID,
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Only jpg, png and webp images are accepted.",
			"requestID": requestID,
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded image", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer file.Close()

	id, err := gonanoid.New()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate image key", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	key := "images/" + id + ext

	uri, err := d.S3.UploadImage(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to store the image.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uri": uri})
}
