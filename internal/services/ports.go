package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

// BookingStore persists bookings. Create redeems b.PromoCode atomically with
// the insert and returns repositories.ErrPromoExhausted when none is left.
type BookingStore interface {
	List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	Create(ctx context.Context, b models.Booking) (int64, error)
	Update(ctx context.Context, id int64, u models.BookingUpdate, priceDisplay string) error
	UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus, driverID, debt int64) (bool, error)
	AssignDriver(ctx context.Context, id, driverID int64, driverName string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type DriverStore interface {
	List(ctx context.Context) ([]models.Driver, error)
	GetByID(ctx context.Context, id int64) (models.Driver, error)
	Create(ctx context.Context, d models.Driver) (int64, error)
	Update(ctx context.Context, id int64, u models.DriverUpdate) error
	UpdateStatus(ctx context.Context, id int64, status models.DriverStatus) error
	SettleDebt(ctx context.Context, id, amount int64) error
	SetDocument(ctx context.Context, id int64, kind, url string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type TourStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Tour, error)
	GetByID(ctx context.Context, id int64) (models.Tour, error)
	Create(ctx context.Context, t models.Tour) (int64, error)
	Update(ctx context.Context, id int64, u models.TourUpdate) error
	SetImage(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type PromoStore interface {
	List(ctx context.Context) ([]models.PromoCode, error)
	GetByID(ctx context.Context, id int64) (models.PromoCode, error)
	GetByCode(ctx context.Context, code string) (models.PromoCode, error)
	Create(ctx context.Context, p models.PromoCode) (int64, error)
	Update(ctx context.Context, id int64, u models.PromoUpdate) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (models.Settings, bool, error)
	Save(ctx context.Context, s models.Settings) error
}

type SMSLogStore interface {
	Insert(ctx context.Context, l models.SMSLog) (int64, error)
	List(ctx context.Context, limit int) ([]models.SMSLog, error)
}

type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (models.Admin, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a models.Admin) (int64, error)
}

// FileStore keeps uploaded files and returns a retrievable URL.
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// SMSSender delivers one text message and returns the provider reference.
// An empty from uses the gateway default sender id.
type SMSSender interface {
	Send(ctx context.Context, from, phone, message string) (string, error)
}

// Notifier is the part of SMSService other services depend on.
type Notifier interface {
	Notify(ctx context.Context, rc domain.RequestContext, phone, message string, bookingID int64) models.SMSLog
}

func lookupErr(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return domain.InternalError{Err: err}
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
