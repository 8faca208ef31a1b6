package handlers

import (
	"net/http"

	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/backup downloads every collection as one JSON file.
func (h *Handlers) ExportBackup(c *gin.Context) {
	b, err := h.Backup.Export(c.Request.Context(), middleware.Session(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	filename := "tourdesk-backup-" + b.GeneratedAt.Format("20060102-150405") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.IndentedJSON(http.StatusOK, b)
}
