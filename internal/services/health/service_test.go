package health

import (
	"context"
	"errors"
	"testing"

	"projectdocs-backend/internal/shared/optional"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestStatusWithoutDatabase(t *testing.T) {
	status, healthy := NewService(optional.None[Pinger]()).Status(context.Background())
	if !healthy || len(status) != 1 || !status["ok"] {
		t.Fatalf("unexpected status: %v %v", status, healthy)
	}
}

func TestStatusReportsDatabase(t *testing.T) {
	up := NewService(optional.Some[Pinger](pingFunc(func(ctx context.Context) error { return nil })))
	status, healthy := up.Status(context.Background())
	if !healthy || !status["database"] || !status["ok"] {
		t.Fatalf("unexpected status: %v", status)
	}

	down := NewService(optional.Some[Pinger](pingFunc(func(ctx context.Context) error { return errors.New("down") })))
	status, healthy = down.Status(context.Background())
	if healthy || status["database"] || status["ok"] {
		t.Fatalf("unexpected status: %v", status)
	}
}
