package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/melvink/api/internal/config"
	"github.com/melvink/api/internal/middleware"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

func RegisterHandler(authService *services.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result := authService.Register(c.Request.Context(), input)
		if !result.Success {
			c.JSON(http.StatusBadRequest, result)
			return
		}

		if result.AccessToken != "" {
			middleware.SetSessionCookies(c, result, cfg.IsProduction())
		}
		c.JSON(http.StatusCreated, result)
	}
}

func LoginHandler(authService *services.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result := authService.Login(c.Request.Context(), input)
		if !result.Success {
			c.JSON(http.StatusUnauthorized, result)
			return
		}

		middleware.SetSessionCookies(c, result, cfg.IsProduction())
		c.JSON(http.StatusOK, result)
	}
}

// LogoutHandler clears the session cookies. Logout always reports success,
// even with no active session.
func LogoutHandler(authService *services.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("access_token")
		result := authService.Logout(c.Request.Context(), token)
		middleware.ClearSessionCookies(c, cfg.IsProduction())
		c.JSON(http.StatusOK, result)
	}
}

// SessionHandler reports the current identity. A missing or invalid session
// is not an error: the result is success with no user.
func SessionHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("access_token")
		result := authService.CheckCurrentUser(c.Request.Context(), token)
		c.JSON(http.StatusOK, result)
	}
}
