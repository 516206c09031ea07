package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvink/api/internal/config"
	"github.com/melvink/api/internal/helpers"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(500, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware resolves the current identity from the access token cookie.
// An expired session is refreshed transparently when a refresh token cookie
// is present; the refreshed tokens are re-set on the response.
func AuthMiddleware(authService *services.AuthService, cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "access token not found in cookie",
			})
			c.Abort()
			return
		}

		result := authService.CheckCurrentUser(c.Request.Context(), token)
		if result.User == nil {
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "session expired",
				})
				c.Abort()
				return
			}

			refreshed := authService.RefreshSession(c.Request.Context(), refreshToken)
			if !refreshed.Success || refreshed.User == nil {
				logger.Error("Session refresh failed", "error", refreshed.Error)
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "session expired and refresh failed",
				})
				c.Abort()
				return
			}

			SetSessionCookies(c, refreshed, cfg.IsProduction())
			result = refreshed
		}

		c.Set("user", result.User)
		c.Next()
	}
}

// AdminOnly gates a route group on the configured admin identity. This is a
// presentation-layer comparison, not a server-enforced role.
func AdminOnly(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			c.Abort()
			return
		}

		claims := &helpers.EnhancedClaims{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		}
		if !claims.IsAdminIdentity(cfg.AdminEmail, cfg.AdminUsername) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser reads the identity set by AuthMiddleware; nil when absent.
func CurrentUser(c *gin.Context) *models.AuthUser {
	value, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, ok := value.(*models.AuthUser)
	if !ok {
		return nil
	}
	return user
}

// SetSessionCookies writes the access and refresh token cookies from an auth
// result. Cookies are httpOnly; secure only in production.
func SetSessionCookies(c *gin.Context, result *models.AuthResult, isProduction bool) {
	expiresIn := result.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	c.SetCookie("access_token", result.AccessToken, expiresIn, "/", "", isProduction, true)
	if result.RefreshToken != "" {
		c.SetCookie("refresh_token", result.RefreshToken, 3600*24*30, "/", "", isProduction, true)
	}
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(c *gin.Context, isProduction bool) {
	c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
	c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)
}
