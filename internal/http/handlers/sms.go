package handlers

import (
	"net/http"
	"strconv"

	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

type smsSendRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /api/sms/send
func (h *Handlers) SendSMS(c *gin.Context) {
	var req smsSendRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	entry, err := h.SMS.Send(c.Request.Context(), middleware.Session(c), req.Phone, req.Message)
	if err != nil {
		if entry.ID != 0 {
			respondError(c, http.StatusBadGateway, "sms_failed", err.Error(), entry)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /api/sms/logs?limit=
func (h *Handlers) ListSMSLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLogLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	out, err := h.SMS.Logs(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
