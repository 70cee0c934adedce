package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/shared/auth"
	"offerfit-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	guestFlagKey = "isGuest"
)

// Auth resolves the caller to a signed-in user or a guest and stores the
// principal in the request context. A bearer JWT wins over a guest header;
// requests carrying neither get 401.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/google/") {
			c.Next()
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, claims.Sub)
			c.Set(guestFlagKey, false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if !validGuestID(guestID) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set(guestFlagKey, true)
		c.Next()
	}
}

// Guest IDs are client-generated UUIDs. They become stored principals and
// rate-limit keys, so anything outside a narrow charset is rejected.
func validGuestID(id string) bool {
	if len(id) < 8 || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// UserIDFromContext fetches the principal set by the auth middleware.
// Guest principals carry a "guest:" prefix.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// IsGuestFromContext reports whether the auth middleware resolved the
// caller to a guest rather than a signed-in user.
func IsGuestFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(guestFlagKey)
	guest, ok := val.(bool)
	return ok && guest
}
