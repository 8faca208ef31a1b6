package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsSummaryUsesStoredRate(t *testing.T) {
	bookings := newFakeBookings(
		models.Booking{ID: 1, Status: models.BookingConfirmed, Price: 100, DriverID: 1, DriverName: "Wayan", TourTitle: "Bromo", CreatedAt: fixedNow.Add(-time.Hour)},
		models.Booking{ID: 2, Status: models.BookingPending, Price: 50, CreatedAt: fixedNow.Add(-2 * time.Hour)},
		models.Booking{ID: 3, Status: models.BookingCompleted, Price: 300, CreatedAt: fixedNow.Add(-10 * 24 * time.Hour)},
	)
	drivers := newFakeDrivers(
		models.Driver{ID: 1, Status: models.DriverActive},
		models.Driver{ID: 2, Status: models.DriverPending},
	)
	st := &fakeSettings{s: models.Settings{CommissionRate: 0.13}, found: true}
	svc := AnalyticsService{Bookings: bookings, Drivers: drivers, Settings: st, Now: func() time.Time { return fixedNow }}

	sum, err := svc.Summary(context.Background(), domain.RangeToday)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalBookings)
	assert.Equal(t, int64(100), sum.TotalGross)
	assert.Equal(t, int64(13), sum.TotalCommission)
	assert.Equal(t, int64(87), sum.NetRevenue)
	assert.Equal(t, 1, sum.ActiveDrivers)
	assert.Equal(t, 1, sum.PendingDrivers)

	sum, err = svc.Summary(context.Background(), domain.RangeAll)
	require.NoError(t, err)
	assert.Equal(t, int64(400), sum.TotalGross)
	assert.Equal(t, 0.13, sum.CommissionRate)
}

func TestAnalyticsSummaryPropagatesStoreErrors(t *testing.T) {
	bookings := newFakeBookings()
	bookings.listErr = errors.New("db down")
	svc := AnalyticsService{Bookings: bookings, Drivers: newFakeDrivers(), Settings: &fakeSettings{}}

	_, err := svc.Summary(context.Background(), domain.RangeAll)
	assert.True(t, domain.IsInternal(err))
}
