package handlers

import (
	"net/http"

	"tourdesk/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /api/analytics/summary?range=TODAY|WEEK|MONTH|ALL
func (h *Handlers) AnalyticsSummary(c *gin.Context) {
	sum, err := h.Analytics.Summary(c.Request.Context(), domain.ParseTimeRange(c.Query("range")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /api/analytics/report?range=
func (h *Handlers) AnalyticsReport(c *gin.Context) {
	pdf, filename, err := h.Docs.AnalyticsReport(c.Request.Context(), domain.ParseTimeRange(c.Query("range")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}
