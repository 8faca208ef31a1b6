package handlers

import (
	"net/http"
	"strconv"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/tours?active=true
func (h *Handlers) ListTours(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))
	h.listTours(c, activeOnly)
}

// GET /api/public/tours
func (h *Handlers) ListActiveTours(c *gin.Context) {
	h.listTours(c, true)
}

func (h *Handlers) listTours(c *gin.Context, activeOnly bool) {
	out, err := h.Tours.List(c.Request.Context(), activeOnly)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.Tours.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handlers) CreateTour(c *gin.Context) {
	var in models.Tour
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.Tours.Create(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handlers) UpdateTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var u models.TourUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	t, err := h.Tours.Update(c.Request.Context(), middleware.Session(c), id, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/tours/:id/image (multipart "file")
func (h *Handlers) UploadTourImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file_required", "multipart field \"file\" is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cannot read upload", err)
		return
	}
	defer f.Close()

	t, err := h.Tours.UploadImage(c.Request.Context(), middleware.Session(c), id, fh.Filename, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handlers) DeleteTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Tours.Delete(c.Request.Context(), middleware.Session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tour deleted"})
}
