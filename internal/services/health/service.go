package health

import (
	"context"
	"time"

	"projectdocs-backend/internal/shared/optional"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db optional.Value[Pinger]
}

// NewService constructs a new health service. db is None when no database is configured.
func NewService(db optional.Value[Pinger]) *Service {
	return &Service{db: db}
}

// Status returns the health payload and whether every configured dependency answered.
func (s *Service) Status(ctx context.Context) (map[string]bool, bool) {
	out := map[string]bool{"ok": true}
	db, ok := s.db.Get()
	if !ok {
		return out, true
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	healthy := db.PingContext(pingCtx) == nil
	out["database"] = healthy
	out["ok"] = healthy
	return out, healthy
}
