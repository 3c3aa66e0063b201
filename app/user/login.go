// Package user contains the account-facing handlers: login, registration,
// activation and password recovery
package user

import (
	"errors"
	"fmt"
	"net/http"

	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	if data.Username == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Error! please check your input(s).",
			"requestID": requestID,
		})
		return
	}

	session, err := d.Auth.Login(data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Bad credentials.",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAccountNotActivated):
			c.JSON(http.StatusForbidden, gin.H{
				"message":           "Your account is not active yet. Please check your email to activate your account.",
				"request_email_url": fmt.Sprintf("%v/v1/user/resend_activation_email", viper.GetString("host.domain")),
				"requestID":         requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Something went wrong on our servers.",
				"requestID": requestID,
			})

			zap.L().Error("Login failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, session)
}
