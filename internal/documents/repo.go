package documents

import "context"

// Repo is the relational store of documents.
type Repo interface {
	// Insert stores doc and returns it with store-assigned fields set.
	Insert(ctx context.Context, doc Document) (Document, error)
	// ListByProject returns the project's documents whose source matches one of
	// sources case-insensitively, ordered by filename.
	ListByProject(ctx context.Context, projectID string, sources []string) ([]Document, error)
	// GetByID returns ErrDocumentNotFound when no row matches.
	GetByID(ctx context.Context, id string) (Document, error)
	// CountBySourceStatus groups the project's documents by source and status.
	// Empty or null values are reported as "unknown".
	CountBySourceStatus(ctx context.Context, projectID string) ([]SourceStatusCount, error)
}
