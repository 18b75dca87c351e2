package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameplan-service/internal/middleware"
	"gameplan-service/internal/telemetry"
)

func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(middleware.RequestIDKey, requestID)
	return requestID
}

func userIDFromContext(c *gin.Context) *string {
	if userID := c.GetString(middleware.UserIDKey); userID != "" {
		return &userID
	}
	if header := c.GetHeader("X-User-ID"); header != "" {
		return &header
	}
	return nil
}

func audit(c *gin.Context, emitter *telemetry.AuditEmitter, level, text, resource string) {
	emitter.Emit(c.Request.Context(), level, text, resource, requestIDFromContext(c), userIDFromContext(c))
}
