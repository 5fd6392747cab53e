package server

import (
	"net/http"
	"strings"
	"time"

	"tobacco-auction/internal/auth"
	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/internal/config"
	"tobacco-auction/internal/metrics"
	"tobacco-auction/services/bidding/helpers"
	"tobacco-auction/utils"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware propagates the caller's request id or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
	if id == "" {
		id = utils.GenerateID()
	}
	c.Set(requestIDKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(requestIDKey),
	}
	if user, ok := helpers.CurrentUser(c); ok {
		fields["user_id"] = user.ID
	}
	utils.Info("HTTP Request", fields)
}

// MetricsMiddleware counts requests by route template, not raw path
func MetricsMiddleware(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}

// AuthMiddleware requires a valid bearer token and stores the caller on the context
func AuthMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := auth.ParseAccessToken(jwtCfg, token)
		if err != nil {
			unauthorized(c, "invalid token")
			utils.Warn("AuthMiddleware: token rejected", map[string]any{
				"request_id": c.GetString(requestIDKey),
				"error":      err.Error(),
			})
			c.Abort()
			return
		}

		helpers.SetCurrentUser(c, claims.User())
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	err := biddingerrors.ErrUnauthenticated
	utils.JSONErrorWithCode(c, http.StatusUnauthorized, err, message, biddingerrors.Code(err), false)
}
