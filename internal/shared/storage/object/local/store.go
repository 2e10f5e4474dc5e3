package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"projectdocs-backend/internal/shared/storage/object"
)

// Store implements object.Client using the local filesystem. It backs
// development setups and end-to-end tests; its "signed" URLs only carry an
// expiry hint.
type Store struct {
	baseDir    string
	publicBase string
	backend    object.Backend
	now        func() time.Time
}

// New creates a local object store rooted at baseDir.
func New(backend object.Backend, baseDir, publicBase string) *Store {
	if backend == "" {
		backend = object.BackendFallback
	}
	return &Store{
		baseDir:    baseDir,
		publicBase: strings.TrimRight(publicBase, "/"),
		backend:    backend,
		now:        time.Now,
	}
}

func (s *Store) Backend() object.Backend { return s.backend }

// Put writes data to baseDir/key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	_ = contentType
	return nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// SignedURL returns the public URL with an expires query parameter.
func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		return "", fmt.Errorf("invalid expiry %s", ttl)
	}
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(s.now().Add(ttl).Unix(), 10))
	return s.PublicURL(key) + "?" + q.Encode(), nil
}

func (s *Store) PublicURL(key string) string {
	return object.JoinURL(s.publicBase, key)
}

func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(object.NormalizeKey(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.Client = (*Store)(nil)
