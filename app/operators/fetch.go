package operators

import (
	"errors"
	"net/http"
	"strconv"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fetch returns an admin's profile. Only the admin itself or a God-level
// admin may look.
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	adminID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid admin id.",
			"requestID": requestID,
		})
		return
	}

	admin, err := d.Admins.FindByID(uint(adminID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Admin not found.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch admin", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if identity.AdminID != admin.ID && !identity.IsGod() {
		c.JSON(http.StatusForbidden, gin.H{
			"message":   "God level admin access required to view others' profile.",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       admin.ID,
		"name":     admin.Name,
		"role":     admin.Role,
		"username": admin.Username,
		"joined":   admin.Joined,
	})
}
