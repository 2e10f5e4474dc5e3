package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoAndErrorCarryFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := SetLogger(zap.New(core))
	defer restore()

	Info("upload.stored", map[string]any{"backend": "fallback", "key": "1_a.txt"})
	Error("upload.failed", map[string]any{"err": errors.New("boom")})

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	info := entries[0].ContextMap()
	if info["backend"] != "fallback" || info["key"] != "1_a.txt" {
		t.Fatalf("unexpected info fields: %v", info)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if got := entries[1].ContextMap()["err"]; got != "boom" {
		t.Fatalf("expected err=boom, got %v", got)
	}
}

func TestInitFallsBackToInfoOnBadLevel(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	if err := Init("not-a-level", "json"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !Logger().Core().Enabled(zap.InfoLevel) {
		t.Fatalf("expected info level enabled")
	}
	if Logger().Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug level disabled")
	}
}
