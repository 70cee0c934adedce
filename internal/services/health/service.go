package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. db may be nil when the API
// runs on in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns the health payload. The database check is a short ping so
// a stalled pool turns the endpoint red instead of hanging it.
func (s *Service) Status(ctx context.Context) map[string]any {
	payload := map[string]any{"ok": true, "storage": "memory"}
	if s == nil || s.DB == nil {
		return payload
	}

	payload["storage"] = "postgres"
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		payload["ok"] = false
		payload["database"] = err.Error()
	}
	return payload
}
