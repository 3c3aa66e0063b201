package operators

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createAdminBody struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create registers a new admin account. The route is behind RequireGod.
func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data createAdminBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	role := model.Role(data.Role)
	if data.Role == "" {
		role = model.RoleRegularMember
	}

	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Unknown role provided.",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash admin password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	admin := &model.Admin{
		Name:         data.Name,
		Username:     data.Username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := d.Admins.Create(admin); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"message":   "An admin with that username already exists. Please try another.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create admin", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Admin registeration successful.",
		"admin_id":  admin.ID,
		"requestID": requestID,
	})
}
