package object

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Backend identifies which configured storage slot a client fills.
type Backend string

const (
	BackendPrimary  Backend = "primary"
	BackendFallback Backend = "fallback"
)

// SignedURLTTL is the expiry of every signed read URL the service hands out.
const SignedURLTTL = 3600 * time.Second

// Client is one object-storage backend.
type Client interface {
	// Backend reports the slot this client was configured for.
	Backend() Backend
	// Put writes data under key.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// SignedURL returns a time-limited read URL for key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// PublicURL builds the deterministic public URL for key without a network call.
	PublicURL(key string) string
}

// NormalizeKey strips leading slashes from an object key.
func NormalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}

// EscapeKey percent-encodes each path segment of a normalized key, keeping the separators.
func EscapeKey(key string) string {
	segments := strings.Split(NormalizeKey(key), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// JoinURL appends an escaped key to base.
func JoinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + EscapeKey(key)
}
