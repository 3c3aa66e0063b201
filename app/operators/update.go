package operators

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateAdminBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Update changes an admin's profile. An admin may rename itself after
// re-proving its password; only God may touch someone else, and only God
// may change roles.
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	identity := middleware.GetIdentity(c)

	var data updateAdminBody
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

	selfUpdate := admin.ID == identity.AdminID &&
		data.Password != "" &&
		d.Auth.VerifyAdminPassword(admin, data.Password)

	switch {
	case selfUpdate:
		if data.Name != "" {
			admin.Name = data.Name
		}
	case identity.IsGod():
		if data.Name != "" {
			admin.Name = data.Name
		}

		if data.Role != "" {
			role := model.Role(data.Role)
			if !role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{
					"message":   "Unknown role provided.",
					"requestID": requestID,
				})
				return
			}

			admin.Role = role
		}
	default:
		c.JSON(http.StatusUnauthorized, gin.H{
			"message":   "Unauthorized to modify admin info.",
			"requestID": requestID,
		})
		return
	}

	if err := d.Admins.Update(admin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update admin", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Admin info has been updated.",
		"requestID": requestID,
	})
}
