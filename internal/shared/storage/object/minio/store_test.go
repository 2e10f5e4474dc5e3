package minio

import (
	"context"
	"net/url"
	"testing"
	"time"

	"projectdocs-backend/internal/shared/storage/object"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.Endpoint == "" {
		opts.Endpoint = "localhost:9000"
	}
	if opts.Bucket == "" {
		opts.Bucket = "documents"
	}
	// An explicit region keeps presigning offline.
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	store, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestPublicURLDefaultsToPathStyle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, Options{})
	if got := store.PublicURL("/reports/q1.pdf"); got != "http://localhost:9000/documents/reports/q1.pdf" {
		t.Fatalf("unexpected public url: %s", got)
	}

	secure := newTestStore(t, Options{UseSSL: true, Endpoint: "storage.example.com"})
	if got := secure.PublicURL("a b.txt"); got != "https://storage.example.com/documents/a%20b.txt" {
		t.Fatalf("unexpected public url: %s", got)
	}

	custom := newTestStore(t, Options{PublicBaseURL: "https://cdn.example.com/docs/"})
	if got := custom.PublicURL("reports/q1.pdf"); got != "https://cdn.example.com/docs/reports/q1.pdf" {
		t.Fatalf("unexpected public url: %s", got)
	}
}

func TestSignedURLIsPresigned(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, Options{AccessKey: "minioadmin", SecretKey: "minioadmin"})
	raw, err := store.SignedURL(context.Background(), "//reports/q1.pdf", object.SignedURLTTL)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if parsed.Path != "/documents/reports/q1.pdf" {
		t.Fatalf("unexpected path: %s", parsed.Path)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "3600" {
		t.Fatalf("expected X-Amz-Expires=3600, got %q", got)
	}
	if parsed.Query().Get("X-Amz-Signature") == "" {
		t.Fatalf("expected signature in %s", raw)
	}
}

func TestSignedURLRejectsZeroExpiry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, Options{AccessKey: "k", SecretKey: "s"})
	if _, err := store.SignedURL(context.Background(), "a.txt", 0*time.Second); err == nil {
		t.Fatalf("expected error for zero expiry")
	}
}

func TestNewValidatesOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Bucket: "b"}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
	if _, err := New(Options{Endpoint: "localhost:9000"}); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
	store := newTestStore(t, Options{})
	if store.Backend() != object.BackendFallback {
		t.Fatalf("expected default backend fallback, got %s", store.Backend())
	}
}
