package documents

import (
	"fmt"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation    = kind("validation error")    // 400
	ErrNotFound      = kind("not found")           // 404
	ErrConfiguration = kind("configuration error") // 500
	ErrBackend       = kind("backend error")       // 500
	ErrIntegrity     = kind("integrity error")     // 500
)

var (
	ErrNoFileProvided              = newError(ErrValidation, "no file uploaded")
	ErrMissingProjectID            = newError(ErrValidation, "project_id is required")
	ErrMissingDocumentID           = newError(ErrValidation, "document_id is required")
	ErrDocumentNotFound            = newError(ErrNotFound, "document not found")
	ErrStorageNotConfigured        = newError(ErrConfiguration, "no storage backend configured")
	ErrDatabaseNotConfigured       = newError(ErrConfiguration, "database not configured")
	ErrStoreNotConfigured          = newError(ErrConfiguration, "document store not configured")
	ErrPreviewBackendNotConfigured = newError(ErrConfiguration, "no preview storage backend configured")
	ErrEmptyFilename               = newError(ErrIntegrity, "document has no filename")
)

// Operations reported by BackendError.
const (
	OpStorageWrite   = "storage write"
	OpSignedURL      = "signed url"
	OpDatabaseInsert = "database insert"
	OpDatabaseQuery  = "database query"
)

type kind string

func (k kind) Error() string { return string(k) }

type kindError struct {
	kind error
	msg  string
}

func newError(k error, msg string) error {
	return &kindError{kind: k, msg: msg}
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// BackendError is a failed call to a storage backend or the database.
// It matches ErrBackend and the underlying cause.
type BackendError struct {
	Op     string
	Target string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Target, e.Err)
}

func (e *BackendError) Unwrap() []error {
	return []error{ErrBackend, e.Err}
}
