package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/shared/server/respond"
	"projectdocs-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 with the standard error body.
// The panic and its stack go to the structured log instead of gin's writer.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		telemetry.Error("panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"panic":      fmt.Sprint(rec),
			"stack":      string(debug.Stack()),
			"route":      c.FullPath(),
			"method":     c.Request.Method,
		})
		respond.Error(c, http.StatusInternalServerError, "unexpected server error")
	})
}
