package documents

import (
	"context"
	"errors"
	"strings"

	"projectdocs-backend/internal/shared/metrics"
	"projectdocs-backend/internal/shared/optional"
	"projectdocs-backend/internal/shared/storage/object"
	"projectdocs-backend/internal/shared/telemetry"
)

// Canonical source sets of the list endpoints.
var (
	UploadOrOtherSources = []string{"upload", "other"}
	ScrapedSources       = []string{"scrape"}
)

// Query serves read-only document operations.
type Query struct {
	repo    optional.Value[Repo]
	preview optional.Value[object.Client]
	legacy  optional.Value[object.Client]
}

// NewQuery constructs a Query. preview is the backend asked for signed
// preview URLs; legacy only yields public URLs and is used when preview is
// not configured.
func NewQuery(repo optional.Value[Repo], preview, legacy optional.Value[object.Client]) *Query {
	return &Query{repo: repo, preview: preview, legacy: legacy}
}

// ListByProjectFiltered returns the project's documents whose source is in
// sources, ordered by filename.
func (q *Query) ListByProjectFiltered(ctx context.Context, projectID string, sources []string) ([]Document, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrMissingProjectID
	}
	repo, ok := q.repo.Get()
	if !ok {
		return nil, ErrStoreNotConfigured
	}
	docs, err := repo.ListByProject(ctx, projectID, sources)
	if err != nil {
		return nil, &BackendError{Op: OpDatabaseQuery, Target: "database", Err: err}
	}
	return docs, nil
}

// PreviewURL derives a read URL for a document's file.
func (q *Query) PreviewURL(ctx context.Context, documentID string) (string, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return "", ErrMissingDocumentID
	}
	repo, ok := q.repo.Get()
	if !ok {
		return "", ErrStoreNotConfigured
	}

	doc, err := repo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return "", err
		}
		return "", &BackendError{Op: OpDatabaseQuery, Target: "database", Err: err}
	}
	if strings.TrimSpace(doc.Filename) == "" {
		return "", ErrEmptyFilename
	}
	path := object.NormalizeKey(doc.Filename)

	if client, ok := q.preview.Get(); ok {
		url, err := client.SignedURL(ctx, path, object.SignedURLTTL)
		if err == nil {
			return url, nil
		}
		metrics.IncPreviewSignFailed()
		telemetry.Warn("preview.sign_failed", map[string]any{
			"document_id": documentID,
			"backend":     string(client.Backend()),
			"path":        path,
			"err":         err,
		})
		return client.PublicURL(path), nil
	}
	if client, ok := q.legacy.Get(); ok {
		return client.PublicURL(path), nil
	}
	return "", ErrPreviewBackendNotConfigured
}

// Summary counts the project's documents by source and status.
func (q *Query) Summary(ctx context.Context, projectID string) (Summary, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return Summary{}, ErrMissingProjectID
	}
	repo, ok := q.repo.Get()
	if !ok {
		return Summary{}, ErrStoreNotConfigured
	}
	rows, err := repo.CountBySourceStatus(ctx, projectID)
	if err != nil {
		return Summary{}, &BackendError{Op: OpDatabaseQuery, Target: "database", Err: err}
	}
	return Summarize(rows), nil
}
