package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo used in development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs: make(map[string]Document),
		now:  time.Now,
	}
}

// Insert stores doc, stamping CreatedAt.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.CreatedAt = r.now().UTC()
	r.docs[doc.ID] = doc
	return doc, nil
}

func (r *MemoryRepo) ListByProject(ctx context.Context, projectID string, sources []string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		wanted[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	r.mu.RLock()
	out := []Document{}
	for _, doc := range r.docs {
		if doc.ProjectID != projectID {
			continue
		}
		if _, ok := wanted[strings.ToLower(doc.Source)]; ok {
			out = append(out, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) CountBySourceStatus(ctx context.Context, projectID string) ([]SourceStatusCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type group struct{ source, status string }
	counts := map[group]int{}

	r.mu.RLock()
	for _, doc := range r.docs {
		if doc.ProjectID != projectID {
			continue
		}
		counts[group{source: orUnknown(doc.Source), status: orUnknown(doc.Status)}]++
	}
	r.mu.RUnlock()

	out := make([]SourceStatusCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, SourceStatusCount{Source: g.source, Status: g.status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
