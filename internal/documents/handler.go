package documents

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/server/respond"
)

const maxUploadSize = 50 << 20 // 50MB

// Handler wires HTTP handlers to the upload and query services.
type Handler struct {
	Uploader *Uploader
	Query    *Query
}

// NewHandler constructs a Handler.
func NewHandler(uploader *Uploader, query *Query) *Handler {
	return &Handler{Uploader: uploader, Query: query}
}

// RegisterRoutes attaches document routes. uploadMiddleware runs only on POST /upload.
func (h *Handler) RegisterRoutes(r gin.IRouter, uploadMiddleware ...gin.HandlerFunc) {
	r.POST("/upload", append(uploadMiddleware, h.upload)...)
	r.GET("/documents/project/:project_id/upload-or-other", h.listUploadOrOther)
	r.GET("/documents/project/:project_id/scraped", h.listScraped)
	r.GET("/documents/project/:project_id/summary", h.summary)
	r.GET("/documents/scrape/:document_id", h.preview)
}

// upload godoc
//
//	@Summary		Upload a file
//	@Description	Stores the file on the primary backend, or on the fallback backend when the primary write fails.
//	@Description	Fallback uploads are recorded as pending documents of project_id.
//	@Tags			documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"File to upload"
//	@Param			project_id	formData	string	false	"Project the document belongs to (required when the fallback backend is used)"
//	@Success		200			{object}	UploadResponse
//	@Failure		400			{object}	respond.ErrorResponse
//	@Failure		429			{object}	respond.ErrorResponse
//	@Failure		500			{object}	respond.ErrorResponse
//	@Router			/upload [post]
func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrNoFileProvided.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}

	projectID := strings.TrimSpace(c.PostForm("project_id"))
	c.Set(middleware.ProjectIDKey, projectID)

	res, err := h.Uploader.HandleUpload(c.Request.Context(), UploadInput{
		Data:      data,
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		ProjectID: projectID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Set(middleware.BackendKey, string(res.Backend))
	c.Set(middleware.DocumentIDKey, res.DocumentID)
	respond.OK(c, toUploadResponse(res))
}

// listUploadOrOther godoc
//
//	@Summary	List uploaded and other documents of a project
//	@Tags		documents
//	@Produce	json
//	@Param		project_id	path		string	true	"Project ID"
//	@Success	200			{object}	DocumentListResponse
//	@Failure	400			{object}	respond.ErrorResponse
//	@Failure	500			{object}	respond.ErrorResponse
//	@Router		/documents/project/{project_id}/upload-or-other [get]
func (h *Handler) listUploadOrOther(c *gin.Context) {
	projectID := c.Param("project_id")
	c.Set(middleware.ProjectIDKey, projectID)

	docs, err := h.Query.ListByProjectFiltered(c.Request.Context(), projectID, UploadOrOtherSources)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := DocumentListResponse{Documents: make([]DocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toResponse(doc))
	}
	respond.OK(c, resp)
}

// listScraped godoc
//
//	@Summary	List scraped documents of a project
//	@Tags		documents
//	@Produce	json
//	@Param		project_id	path		string	true	"Project ID"
//	@Success	200			{object}	ScrapedListResponse
//	@Failure	400			{object}	respond.ErrorResponse
//	@Failure	500			{object}	respond.ErrorResponse
//	@Router		/documents/project/{project_id}/scraped [get]
func (h *Handler) listScraped(c *gin.Context) {
	projectID := c.Param("project_id")
	c.Set(middleware.ProjectIDKey, projectID)

	docs, err := h.Query.ListByProjectFiltered(c.Request.Context(), projectID, ScrapedSources)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := ScrapedListResponse{Documents: make([]ScrapedDocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toScrapedResponse(doc))
	}
	respond.OK(c, resp)
}

// summary godoc
//
//	@Summary	Count a project's documents by source and status
//	@Tags		documents
//	@Produce	json
//	@Param		project_id	path		string	true	"Project ID"
//	@Success	200			{object}	Summary
//	@Failure	400			{object}	respond.ErrorResponse
//	@Failure	500			{object}	respond.ErrorResponse
//	@Router		/documents/project/{project_id}/summary [get]
func (h *Handler) summary(c *gin.Context) {
	projectID := c.Param("project_id")
	c.Set(middleware.ProjectIDKey, projectID)

	sum, err := h.Query.Summary(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, sum)
}

// preview godoc
//
//	@Summary	Get a preview URL for a document
//	@Tags		documents
//	@Produce	json
//	@Param		document_id	path		string	true	"Document ID"
//	@Success	200			{object}	PreviewResponse
//	@Failure	400			{object}	respond.ErrorResponse
//	@Failure	404			{object}	respond.ErrorResponse
//	@Failure	500			{object}	respond.ErrorResponse
//	@Router		/documents/scrape/{document_id} [get]
func (h *Handler) preview(c *gin.Context) {
	documentID := c.Param("document_id")
	c.Set(middleware.DocumentIDKey, documentID)

	url, err := h.Query.PreviewURL(c.Request.Context(), documentID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, PreviewResponse{PreviewURL: url})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, err.Error())
	}
}
