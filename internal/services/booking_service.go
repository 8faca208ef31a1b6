package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

type BookingService struct {
	Bookings BookingStore
	Drivers  DriverStore
	Tours    TourStore
	Promos   PromoStore
	Settings SettingsStore
	Notifier Notifier
	Now      func() time.Time
}

func (s BookingService) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + string(f.Status)}
	}
	out, err := s.Bookings.List(ctx, f)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	return out, nil
}

func (s BookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, lookupErr("booking", err)
	}
	return b, nil
}

// Create stores a new booking, applying the promo code when one is given.
// Public requests cannot set the price: it comes from the tour, or stays 0
// for a custom request until an admin quotes it.
func (s BookingService) Create(ctx context.Context, rc domain.RequestContext, in models.Booking) (models.Booking, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	if rc.Anonymous() && settings.MaintenanceMode {
		return models.Booking{}, domain.UnavailableError{Msg: "bookings are paused for maintenance"}
	}

	b := models.Booking{
		CustomerName:   utils.NormalizeSpace(in.CustomerName),
		CustomerPhone:  utils.NormalizePhone(in.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(in.CustomerEmail),
		TourID:         in.TourID,
		TourTitle:      strings.TrimSpace(in.TourTitle),
		TripDate:       strings.TrimSpace(in.TripDate),
		PickupLocation: strings.TrimSpace(in.PickupLocation),
		Passengers:     in.Passengers,
		Price:          in.Price,
		PromoCode:      strings.ToUpper(strings.TrimSpace(in.PromoCode)),
		Notes:          strings.TrimSpace(in.Notes),
	}
	if b.Passengers == 0 {
		b.Passengers = 1
	}
	if rc.Anonymous() {
		b.Price = 0
	}
	if b.TripDate != "" {
		if _, err := utils.ParseDate(b.TripDate); err != nil {
			return models.Booking{}, domain.ValidationError{Field: "tripDate", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}

	if b.TourID > 0 && s.Tours != nil {
		tour, err := s.Tours.GetByID(ctx, b.TourID)
		if err != nil {
			if domain.IsNotFound(lookupErr("tour", err)) {
				return models.Booking{}, domain.ValidationError{Field: "tourId", Msg: "unknown tour"}
			}
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if b.TourTitle == "" {
			b.TourTitle = tour.Title
		}
		if b.Price == 0 {
			b.Price = tour.Price * int64(b.Passengers)
		}
	}

	if err := validateStruct(b); err != nil {
		return models.Booking{}, err
	}

	if b.PromoCode != "" {
		quote, err := s.quotePromo(ctx, b.PromoCode, b.Price)
		if err != nil {
			return models.Booking{}, err
		}
		b.Price = quote.FinalAmount
	}

	b.Status = models.BookingPending
	if settings.AutoConfirm {
		b.Status = models.BookingConfirmed
	}
	b.PriceDisplay = utils.FormatPrice(b.Price, settings.Currency)

	id, err := s.Bookings.Create(ctx, b)
	if err != nil {
		if errors.Is(err, repositories.ErrPromoExhausted) {
			return models.Booking{}, domain.ValidationError{Field: "promoCode", Msg: "usage limit reached", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	utils.LogEvent(rc.RequestID, "booking", "create", fmt.Sprintf("id=%d by=%s status=%s promo=%s", id, rc.Actor(), b.Status, b.PromoCode))

	created, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if created.Status == models.BookingConfirmed {
		s.notify(ctx, rc, created.CustomerPhone, confirmedMessage(created), created.ID)
	}
	return created, nil
}

// quotePromo checks the code against amount. The usage itself is counted by
// the booking store when the row is inserted.
func (s BookingService) quotePromo(ctx context.Context, code string, amount int64) (models.PromoQuote, error) {
	if s.Promos == nil {
		return models.PromoQuote{}, domain.ValidationError{Field: "promoCode", Msg: "promo codes unavailable"}
	}
	promo, err := s.Promos.GetByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(lookupErr("promo code", err)) {
			return models.PromoQuote{}, domain.ValidationError{Field: "promoCode", Msg: "unknown code"}
		}
		return models.PromoQuote{}, domain.InternalError{Err: err}
	}
	quote := QuotePromo(promo, amount, clock(s.Now))
	if !quote.Valid {
		return quote, domain.ValidationError{Field: "promoCode", Msg: quote.Reason}
	}
	return quote, nil
}

func (s BookingService) Update(ctx context.Context, rc domain.RequestContext, id int64, u models.BookingUpdate) (models.Booking, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Booking{}, err
	}
	if u.CustomerName != nil && strings.TrimSpace(*u.CustomerName) == "" {
		return models.Booking{}, domain.ValidationError{Field: "customerName", Msg: "is required"}
	}
	if u.CustomerPhone != nil {
		phone := utils.NormalizePhone(*u.CustomerPhone)
		if phone == "" {
			return models.Booking{}, domain.ValidationError{Field: "customerPhone", Msg: "is required"}
		}
		u.CustomerPhone = &phone
	}
	if u.Passengers != nil && *u.Passengers < 0 {
		return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "must be >= 0"}
	}
	if u.TripDate != nil && strings.TrimSpace(*u.TripDate) != "" {
		if _, err := utils.ParseDate(*u.TripDate); err != nil {
			return models.Booking{}, domain.ValidationError{Field: "tripDate", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	display := ""
	if u.Price != nil {
		if *u.Price < 0 {
			return models.Booking{}, domain.ValidationError{Field: "price", Msg: "must be >= 0"}
		}
		settings, err := s.settings(ctx)
		if err != nil {
			return models.Booking{}, err
		}
		display = utils.FormatPrice(*u.Price, settings.Currency)
	}

	if err := s.Bookings.Update(ctx, id, u, display); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	utils.LogEvent(rc.RequestID, "booking", "update", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

// UpdateStatus moves a booking to status. The first time a booking with a
// driver enters COMPLETED, the platform commission is charged to that
// driver's debt; later re-entries do not charge again.
func (s BookingService) UpdateStatus(ctx context.Context, rc domain.RequestContext, id int64, status models.BookingStatus) (models.Booking, error) {
	status = models.BookingStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(status)}
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == status {
		return b, nil
	}

	var debt int64
	if status == models.BookingCompleted && b.DriverID > 0 {
		settings, err := s.settings(ctx)
		if err != nil {
			return models.Booking{}, err
		}
		debt = domain.Commission(b.Price, settings.CommissionRate)
	}

	charged, err := s.Bookings.UpdateStatus(ctx, id, b.Status, status, b.DriverID, debt)
	if err != nil {
		if errors.Is(err, repositories.ErrStatusChanged) {
			return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status was changed by another request", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to update booking status", Err: err}
	}
	if !charged {
		debt = 0
	}
	utils.LogEvent(rc.RequestID, "booking", "status", fmt.Sprintf("id=%d by=%s %s->%s debt=%d", id, rc.Actor(), b.Status, status, debt))

	b.Status = status
	switch status {
	case models.BookingConfirmed:
		s.notify(ctx, rc, b.CustomerPhone, confirmedMessage(b), b.ID)
	case models.BookingCancelled:
		s.notify(ctx, rc, b.CustomerPhone, cancelledMessage(b), b.ID)
	}
	return s.Get(ctx, id)
}

// AssignDriver attaches an active driver; driverID 0 clears the assignment.
func (s BookingService) AssignDriver(ctx context.Context, rc domain.RequestContext, id, driverID int64) (models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	var d models.Driver
	if driverID != 0 {
		d, err = s.Drivers.GetByID(ctx, driverID)
		if err != nil {
			if domain.IsNotFound(lookupErr("driver", err)) {
				return models.Booking{}, domain.ValidationError{Field: "driverId", Msg: "unknown driver"}
			}
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if d.Status != models.DriverActive {
			return models.Booking{}, domain.ValidationError{Field: "driverId", Msg: "driver is not active"}
		}
	}
	if err := s.Bookings.AssignDriver(ctx, id, d.ID, d.Name); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to assign driver", Err: err}
	}
	utils.LogEvent(rc.RequestID, "booking", "assign_driver", fmt.Sprintf("id=%d driver_id=%d by=%s", id, d.ID, rc.Actor()))

	if d.ID != 0 {
		s.notify(ctx, rc, d.Phone, driverAssignedMessage(b), b.ID)
	}
	return s.Get(ctx, id)
}

func (s BookingService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	ok, err := s.Bookings.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete booking", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	utils.LogEvent(rc.RequestID, "booking", "delete", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return nil
}

func (s BookingService) settings(ctx context.Context) (models.Settings, error) {
	if s.Settings == nil {
		return models.DefaultSettings(), nil
	}
	st, _, err := s.Settings.Get(ctx)
	if err != nil {
		return models.Settings{}, domain.InternalError{Msg: "failed to load settings", Err: err}
	}
	return st, nil
}

func (s BookingService) notify(ctx context.Context, rc domain.RequestContext, phone, msg string, bookingID int64) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, rc, phone, msg, bookingID)
}

func confirmedMessage(b models.Booking) string {
	return fmt.Sprintf("Hi %s, your booking #%d (%s, %s) is confirmed. Total %s.",
		firstWord(b.CustomerName), b.ID, utils.FirstNonEmpty(b.TourTitle, "transfer"), utils.FirstNonEmpty(b.TripDate, "-"), b.PriceDisplay)
}

func cancelledMessage(b models.Booking) string {
	return fmt.Sprintf("Hi %s, your booking #%d (%s) has been cancelled.",
		firstWord(b.CustomerName), b.ID, utils.FirstNonEmpty(b.TourTitle, "transfer"))
}

func driverAssignedMessage(b models.Booking) string {
	return fmt.Sprintf("New trip #%d: %s on %s, pickup %s. Customer %s %s.",
		b.ID, utils.FirstNonEmpty(b.TourTitle, "transfer"), utils.FirstNonEmpty(b.TripDate, "-"),
		utils.FirstNonEmpty(b.PickupLocation, "-"), b.CustomerName, b.CustomerPhone)
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return "there"
}
