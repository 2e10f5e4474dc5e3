package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, project_id, filename, file_path, source, status, document_content, created_at`

// Insert adds a new document row; created_at is assigned by the database.
func (r *PGRepo) Insert(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (
    id,
    project_id,
    filename,
    file_path,
    source,
    status,
    document_content
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

	var content sql.NullString
	if doc.DocumentContent != nil {
		content = sql.NullString{String: *doc.DocumentContent, Valid: true}
	}

	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.ID,
		doc.ProjectID,
		doc.Filename,
		doc.FilePath,
		doc.Source,
		doc.Status,
		content,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ListByProject lists documents of a project filtered by source, ordered by filename.
func (r *PGRepo) ListByProject(ctx context.Context, projectID string, sources []string) ([]Document, error) {
	if len(sources) == 0 {
		return []Document{}, nil
	}

	args := make([]any, 0, len(sources)+1)
	args = append(args, projectID)
	placeholders := make([]string, 0, len(sources))
	for _, s := range sources {
		args = append(args, strings.ToLower(strings.TrimSpace(s)))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE project_id = $1 AND lower(source) IN (` + strings.Join(placeholders, ", ") + `)
ORDER BY filename ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	// ids are UUIDs; anything else cannot exist and would make Postgres reject the cast.
	if _, err := uuid.Parse(id); err != nil {
		return Document{}, ErrDocumentNotFound
	}

	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1
LIMIT 1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// CountBySourceStatus returns document counts grouped by source and status.
func (r *PGRepo) CountBySourceStatus(ctx context.Context, projectID string) ([]SourceStatusCount, error) {
	const query = `
SELECT
    COALESCE(NULLIF(source, ''), 'unknown') AS source,
    COALESCE(NULLIF(status, ''), 'unknown') AS status,
    COUNT(*)
FROM documents
WHERE project_id = $1
GROUP BY 1, 2
ORDER BY 1, 2`

	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SourceStatusCount{}
	for rows.Next() {
		var row SourceStatusCount
		if err := rows.Scan(&row.Source, &row.Status, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var source sql.NullString
	var status sql.NullString
	var content sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.Filename,
		&doc.FilePath,
		&source,
		&status,
		&content,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Source = source.String
	doc.Status = status.String
	if content.Valid {
		doc.DocumentContent = &content.String
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
