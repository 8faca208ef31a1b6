package handlers

import (
	"net/http"
	"strings"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type driverStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type settleDebtRequest struct {
	Amount int64 `json:"amount"`
}

// GET /api/drivers?q=&sort=&order=
func (h *Handlers) ListDrivers(c *gin.Context) {
	q := models.DriverQuery{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
		Desc:   strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc"),
	}
	out, err := h.Drivers.List(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.Drivers.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) CreateDriver(c *gin.Context) {
	var in models.Driver
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.Drivers.Create(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// POST /api/public/drivers/register
func (h *Handlers) RegisterDriver(c *gin.Context) {
	var in models.Driver
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.Drivers.Register(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration received, waiting for approval", "driver": d})
}

func (h *Handlers) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var u models.DriverUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	d, err := h.Drivers.Update(c.Request.Context(), middleware.Session(c), id, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) UpdateDriverStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req driverStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := h.Drivers.UpdateStatus(c.Request.Context(), middleware.Session(c), id, models.DriverStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers/:id/settle; an empty body settles the full debt.
func (h *Handlers) SettleDriverDebt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req settleDebtRequest
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	d, err := h.Drivers.SettleDebt(c.Request.Context(), middleware.Session(c), id, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers/:id/documents/:kind (multipart "file")
func (h *Handlers) UploadDriverDocument(c *gin.Context) {
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

	d, err := h.Drivers.UploadDocument(c.Request.Context(), middleware.Session(c), id, c.Param("kind"), fh.Filename, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Drivers.Delete(c.Request.Context(), middleware.Session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
