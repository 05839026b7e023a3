package database

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
)

// SessionKey is the gin context key holding the request's *Session.
const SessionKey = "db_session"

// Middleware opens one session per request and releases it after the handler
// chain has run. An acquire failure aborts the request with 503.
func Middleware(p SessionProvider, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := WithSession(c.Request.Context(), p, func(_ context.Context, s *Session) error {
			c.Set(SessionKey, s)
			c.Next()
			return nil
		})
		if err == nil {
			return
		}

		reqLog, ok := logger.Lookup(c.Request.Context())
		if !ok {
			reqLog = log
		}
		reqLog.Error("Database session failed",
			logger.Error(err),
			logger.String("path", c.Request.URL.Path),
		)
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Service Unavailable"})
		}
	}
}

// FromGin returns the request's session. It is nil when no usable connection exists.
func FromGin(c *gin.Context) *Session {
	s, _ := c.Get(SessionKey)
	session, _ := s.(*Session)
	return session
}
