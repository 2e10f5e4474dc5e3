package documents

import "time"

// Document sources. Comparison is case-insensitive.
const (
	SourceUpload = "Upload"
	SourceScrape = "Scrape"
	SourceOther  = "Other"
)

// StatusPending is the status of a freshly uploaded document.
const StatusPending = "pending"

// Document is one uploaded or discovered file of a project.
type Document struct {
	ID              string
	ProjectID       string
	Filename        string
	FilePath        string
	Source          string
	Status          string
	DocumentContent *string
	CreatedAt       time.Time
}

// SourceStatusCount is one (source, status) group of a project's documents.
type SourceStatusCount struct {
	Source string
	Status string
	Count  int
}
