package handlers

import (
	"net/http"
	"strings"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type bookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type assignDriverRequest struct {
	DriverID *int64 `json:"driverId" binding:"required"`
}

// GET /api/bookings?status=&q=
func (h *Handlers) ListBookings(c *gin.Context) {
	f := models.BookingFilter{
		Status: models.BookingStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Query:  strings.TrimSpace(c.Query("q")),
	}
	out, err := h.Bookings.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bookings (admin) and POST /api/public/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var in models.Booking
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), middleware.Session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PATCH /api/bookings/:id
func (h *Handlers) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var u models.BookingUpdate
	if !BindJSONOrError(c, &u) {
		return
	}
	b, err := h.Bookings.Update(c.Request.Context(), middleware.Session(c), id, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id/status
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), middleware.Session(c), id, models.BookingStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id/driver
func (h *Handlers) AssignBookingDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req assignDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.AssignDriver(c.Request.Context(), middleware.Session(c), id, *req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handlers) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), middleware.Session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// GET /api/bookings/:id/voucher
func (h *Handlers) BookingVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, filename, err := h.Docs.BookingVoucher(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}
