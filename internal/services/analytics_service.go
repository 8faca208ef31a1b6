package services

import (
	"context"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

// AnalyticsService loads the current snapshot and hands it to ComputeSummary.
// Nothing is cached; every call recomputes from the stores.
type AnalyticsService struct {
	Bookings BookingStore
	Drivers  DriverStore
	Settings SettingsStore
	Now      func() time.Time
}

func (s AnalyticsService) Summary(ctx context.Context, tr domain.TimeRange) (domain.Summary, error) {
	bookings, err := s.Bookings.List(ctx, models.BookingFilter{})
	if err != nil {
		return domain.Summary{}, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	drivers, err := s.Drivers.List(ctx)
	if err != nil {
		return domain.Summary{}, domain.InternalError{Msg: "failed to load drivers", Err: err}
	}
	st, _, err := s.Settings.Get(ctx)
	if err != nil {
		return domain.Summary{}, domain.InternalError{Msg: "failed to load settings", Err: err}
	}
	return domain.ComputeSummary(bookings, drivers, st.CommissionRate, tr, clock(s.Now)), nil
}
