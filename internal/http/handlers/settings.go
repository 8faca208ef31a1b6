package handlers

import (
	"net/http"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetSettings(c *gin.Context) {
	st, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// PUT /api/settings accepts any subset of the settings fields.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var u models.SettingsUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	st, err := h.Settings.Update(c.Request.Context(), middleware.Session(c), u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
