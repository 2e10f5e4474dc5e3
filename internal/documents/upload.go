package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectdocs-backend/internal/shared/metrics"
	"projectdocs-backend/internal/shared/optional"
	"projectdocs-backend/internal/shared/storage/object"
	"projectdocs-backend/internal/shared/telemetry"
)

// UploadInput is one file received by POST /upload.
type UploadInput struct {
	Data      []byte
	FileName  string
	MimeType  string
	ProjectID string
}

// UploadResult describes where the file went. DocumentID is empty when no
// row was recorded (primary backend uploads).
type UploadResult struct {
	DocumentID string
	Name       string
	URL        string
	Backend    object.Backend
}

// StorageResult is the outcome of the storage step: which backend accepted
// the object, under which key, and its signed read URL.
type StorageResult struct {
	Backend object.Backend
	Key     string
	URL     string
}

// Uploader stores uploads on the primary backend, falling back to the
// secondary one, and records fallback uploads in the document store.
type Uploader struct {
	primary  optional.Value[object.Client]
	fallback optional.Value[object.Client]
	repo     optional.Value[Repo]
	now      func() time.Time
	newID    func() string
}

// NewUploader constructs an Uploader. Unconfigured collaborators are passed as optional.None.
func NewUploader(primary, fallback optional.Value[object.Client], repo optional.Value[Repo]) *Uploader {
	return &Uploader{
		primary:  primary,
		fallback: fallback,
		repo:     repo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// StoredName is the object key of an upload: "<unix ms>_<original name>".
func StoredName(at time.Time, fileName string) string {
	return fmt.Sprintf("%d_%s", at.UnixMilli(), fileName)
}

// HandleUpload writes the file to exactly one backend and, for fallback
// uploads, inserts a pending document row. Failures after the object write
// leave the object in place.
func (u *Uploader) HandleUpload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if len(in.Data) == 0 || strings.TrimSpace(in.FileName) == "" {
		return UploadResult{}, ErrNoFileProvided
	}

	start := time.Now()
	res, err := u.handle(ctx, in)
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncUploadFailed()
		return UploadResult{}, err
	}
	metrics.IncUploadStored(string(res.Backend))
	return res, nil
}

func (u *Uploader) handle(ctx context.Context, in UploadInput) (UploadResult, error) {
	stored, err := u.store(ctx, StoredName(u.now(), in.FileName), in)
	if err != nil {
		return UploadResult{}, err
	}

	switch stored.Backend {
	case object.BackendPrimary:
		// Primary uploads are returned without a document row.
		telemetry.Info("upload.stored", map[string]any{
			"backend":   string(stored.Backend),
			"key":       stored.Key,
			"persisted": false,
		})
		return UploadResult{Name: stored.Key, URL: stored.URL, Backend: stored.Backend}, nil
	case object.BackendFallback:
		return u.persist(ctx, stored, in)
	default:
		return UploadResult{}, fmt.Errorf("unknown storage backend %q", stored.Backend)
	}
}

func (u *Uploader) store(ctx context.Context, key string, in UploadInput) (StorageResult, error) {
	var primaryErr error
	if client, ok := u.primary.Get(); ok {
		res, err := writeAndSign(ctx, client, object.BackendPrimary, key, in)
		if err == nil {
			return res, nil
		}
		if !isWriteFailure(err) {
			return StorageResult{}, err
		}
		primaryErr = err
		metrics.IncPrimaryWriteFailed()
		telemetry.Warn("upload.primary_failed", map[string]any{
			"key": key,
			"err": err,
		})
	}

	client, ok := u.fallback.Get()
	if !ok {
		if primaryErr != nil {
			return StorageResult{}, primaryErr
		}
		return StorageResult{}, ErrStorageNotConfigured
	}
	return writeAndSign(ctx, client, object.BackendFallback, key, in)
}

func writeAndSign(ctx context.Context, client object.Client, backend object.Backend, key string, in UploadInput) (StorageResult, error) {
	if err := client.Put(ctx, key, in.Data, in.MimeType); err != nil {
		return StorageResult{}, &BackendError{Op: OpStorageWrite, Target: string(backend), Err: err}
	}
	url, err := client.SignedURL(ctx, key, object.SignedURLTTL)
	if err != nil {
		return StorageResult{}, &BackendError{Op: OpSignedURL, Target: string(backend), Err: err}
	}
	return StorageResult{Backend: backend, Key: key, URL: url}, nil
}

func isWriteFailure(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Op == OpStorageWrite
}

func (u *Uploader) persist(ctx context.Context, stored StorageResult, in UploadInput) (UploadResult, error) {
	projectID := strings.TrimSpace(in.ProjectID)
	if projectID == "" {
		logOrphan(stored, ErrMissingProjectID)
		return UploadResult{}, ErrMissingProjectID
	}
	repo, ok := u.repo.Get()
	if !ok {
		logOrphan(stored, ErrDatabaseNotConfigured)
		return UploadResult{}, ErrDatabaseNotConfigured
	}

	doc, err := repo.Insert(ctx, Document{
		ID:        u.newID(),
		ProjectID: projectID,
		Filename:  in.FileName,
		FilePath:  stored.Key,
		Source:    SourceUpload,
		Status:    StatusPending,
	})
	if err != nil {
		insertErr := &BackendError{Op: OpDatabaseInsert, Target: "database", Err: err}
		logOrphan(stored, insertErr)
		return UploadResult{}, insertErr
	}

	telemetry.Info("upload.stored", map[string]any{
		"backend":     string(stored.Backend),
		"key":         stored.Key,
		"persisted":   true,
		"document_id": doc.ID,
		"project_id":  projectID,
	})
	return UploadResult{
		DocumentID: doc.ID,
		Name:       stored.Key,
		URL:        stored.URL,
		Backend:    stored.Backend,
	}, nil
}

func logOrphan(stored StorageResult, cause error) {
	metrics.IncOrphanObject()
	telemetry.Warn("upload.orphan_object", map[string]any{
		"backend": string(stored.Backend),
		"key":     stored.Key,
		"err":     cause,
	})
}
