package handlers

import (
	"net/http"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type promoValidateRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount int64  `json:"amount"`
}

func (h *Handlers) ListPromos(c *gin.Context) {
	out, err := h.Promos.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreatePromo(c *gin.Context) {
	var in models.PromoCode
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := h.Promos.Create(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handlers) UpdatePromo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var u models.PromoUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	p, err := h.Promos.Update(c.Request.Context(), middleware.Session(c), id, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handlers) DeletePromo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Promos.Delete(c.Request.Context(), middleware.Session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "promo code deleted"})
}

// POST /api/public/promos/validate
func (h *Handlers) ValidatePromo(c *gin.Context) {
	var req promoValidateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.Promos.Validate(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
