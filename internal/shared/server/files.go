package server

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/server/respond"
)

// FileOpener reads stored objects, e.g. the local development store.
type FileOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// serveFiles streams objects of a local store under /files/*key so that its
// public and signed URLs resolve in development.
func serveFiles(files FileOpener) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, http.StatusNotFound, "file not found")
			return
		}

		rc, err := files.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				respond.Error(c, http.StatusNotFound, "file not found")
				return
			}
			respond.Error(c, http.StatusBadRequest, "invalid file key")
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
	}
}
