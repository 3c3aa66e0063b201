// Package operators contains the admin account handlers
package operators

import (
	"errors"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestTokenBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RequestToken mirrors the user login for admin accounts. There is no
// activation gate; operators are provisioned by a God-level admin.
func RequestToken(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data requestTokenBody
	if err := c.ShouldBind(&data); err != nil || data.Username == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	session, err := d.Auth.AdminLogin(data.Username, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Bad credentials.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Something went wrong on our servers.",
			"requestID": requestID,
		})

		zap.L().Error("Admin login failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, session)
}
