package operators

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type deleteAdminBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Delete removes an admin account. Self-deletion requires the password
// again; God may delete anyone.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	var data deleteAdminBody
	if err := c.ShouldBind(&data); err != nil || data.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	admin, err := d.Admins.FindByUsername(data.Username)
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

	allowed := identity.IsGod() ||
		(admin.ID == identity.AdminID &&
			data.Password != "" &&
			d.Auth.VerifyAdminPassword(admin, data.Password))

	if !allowed {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message":   "Unauthorized to delete.",
			"requestID": requestID,
		})
		return
	}

	if err := d.Admins.Delete(admin.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete admin", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "The admin has been deleted.",
		"requestID": requestID,
	})
}
