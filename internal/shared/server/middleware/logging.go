package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/shared/telemetry"
)

// Logging emits one structured line per request. Handlers can enrich the
// line by setting offerId, evaluationId, or statusTransition on the context.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"bytes":       c.Writer.Size(),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID, ok := c.Get(userIDKey); ok {
			fields["user_id"] = userID
		}
		if isGuest, ok := c.Get(guestFlagKey); ok {
			fields["is_guest"] = isGuest
		}
		if offerID, ok := c.Get("offerId"); ok {
			fields["offer_id"] = offerID
		}
		if evaluationID, ok := c.Get("evaluationId"); ok {
			fields["evaluation_id"] = evaluationID
		}
		if transition := c.GetString("statusTransition"); transition != "" {
			fields["status_transition"] = transition
		}

		if status >= http.StatusInternalServerError {
			telemetry.Error("request.complete", fields)
		} else {
			telemetry.Info("request.complete", fields)
		}
	}
}
