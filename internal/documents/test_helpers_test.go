package documents

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"projectdocs-backend/internal/shared/optional"
	"projectdocs-backend/internal/shared/storage/object"
	"projectdocs-backend/internal/shared/telemetry"
)

var errBoom = errors.New("boom")

type putCall struct {
	key         string
	data        []byte
	contentType string
}

type fakeClient struct {
	backend object.Backend
	putErr  error
	signErr error

	mu    sync.Mutex
	puts  []putCall
	signs []string
}

func newFakeClient(backend object.Backend) *fakeClient {
	return &fakeClient{backend: backend}
}

func (f *fakeClient) Backend() object.Backend { return f.backend }

func (f *fakeClient) Put(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, putCall{key: key, data: data, contentType: contentType})
	return f.putErr
}

func (f *fakeClient) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signs = append(f.signs, key)
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://signed." + string(f.backend) + ".test/" + object.EscapeKey(key) + "?ttl=" + ttl.String(), nil
}

func (f *fakeClient) PublicURL(key string) string {
	return "https://public." + string(f.backend) + ".test/" + object.EscapeKey(key)
}

func (f *fakeClient) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeClient) signCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.signs)
}

// failingRepo returns err from every call and counts inserts.
type failingRepo struct {
	err     error
	inserts int
}

func (r *failingRepo) Insert(ctx context.Context, doc Document) (Document, error) {
	r.inserts++
	return Document{}, r.err
}

func (r *failingRepo) ListByProject(ctx context.Context, projectID string, sources []string) ([]Document, error) {
	return nil, r.err
}

func (r *failingRepo) GetByID(ctx context.Context, id string) (Document, error) {
	return Document{}, r.err
}

func (r *failingRepo) CountBySourceStatus(ctx context.Context, projectID string) ([]SourceStatusCount, error) {
	return nil, r.err
}

func someClient(c object.Client) optional.Value[object.Client] {
	return optional.Some(c)
}

func noClient() optional.Value[object.Client] {
	return optional.None[object.Client]()
}

func someRepo(r Repo) optional.Value[Repo] {
	return optional.Some(r)
}

func noRepo() optional.Value[Repo] {
	return optional.None[Repo]()
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := telemetry.SetLogger(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func seedDocument(t *testing.T, repo Repo, doc Document) Document {
	t.Helper()
	out, err := repo.Insert(context.Background(), doc)
	if err != nil {
		t.Fatalf("seed %s: %v", doc.ID, err)
	}
	return out
}
