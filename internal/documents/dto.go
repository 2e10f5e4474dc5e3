package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Filename        string    `json:"filename"`
	FilePath        string    `json:"file_path"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	DocumentContent *string   `json:"document_content"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScrapedDocumentResponse is the projection served for scraped documents.
type ScrapedDocumentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// DocumentListResponse wraps a document list.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ScrapedListResponse wraps a scraped document list.
type ScrapedListResponse struct {
	Documents []ScrapedDocumentResponse `json:"documents"`
}

// UploadResponse is returned by POST /upload. DocumentID and Message are
// omitted for uploads that were not recorded.
type UploadResponse struct {
	DocumentID string `json:"document_id,omitempty"`
	Message    string `json:"message,omitempty"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

// PreviewResponse carries a document preview URL.
type PreviewResponse struct {
	PreviewURL string `json:"preview_url"`
}

const uploadSuccessMessage = "upload successfully"

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:              doc.ID,
		ProjectID:       doc.ProjectID,
		Filename:        doc.Filename,
		FilePath:        doc.FilePath,
		Source:          doc.Source,
		Status:          doc.Status,
		DocumentContent: doc.DocumentContent,
		CreatedAt:       doc.CreatedAt,
	}
}

func toScrapedResponse(doc Document) ScrapedDocumentResponse {
	return ScrapedDocumentResponse{
		ID:        doc.ID,
		FileName:  doc.Filename,
		CreatedAt: doc.CreatedAt,
		Status:    doc.Status,
	}
}

func toUploadResponse(res UploadResult) UploadResponse {
	resp := UploadResponse{Name: res.Name, URL: res.URL}
	if res.DocumentID != "" {
		resp.DocumentID = res.DocumentID
		resp.Message = uploadSuccessMessage
	}
	return resp
}
