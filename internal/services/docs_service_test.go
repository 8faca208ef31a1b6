package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsServiceGenerate(t *testing.T) {
	bookings := newFakeBookings(models.Booking{
		ID: 12, CustomerName: "Budi Santoso", CustomerPhone: "0811", TourTitle: "Bromo Sunrise",
		TripDate: "2026-11-01", Passengers: 2, Status: models.BookingConfirmed, Price: 700000,
		DriverID: 1, DriverName: "Wayan", CreatedAt: fixedNow,
	})
	st := &fakeSettings{s: models.Settings{CommissionRate: 0.1, Currency: "IDR", SupportEmail: "cs@tourdesk.id"}, found: true}
	now := func() time.Time { return fixedNow }
	svc := DocsService{
		Bookings:  bookings,
		Settings:  st,
		Analytics: AnalyticsService{Bookings: bookings, Drivers: newFakeDrivers(), Settings: st, Now: now},
		Now:       now,
	}

	pdf, filename, err := svc.BookingVoucher(context.Background(), 12)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "VOUCHER_12_Budi_Santoso.pdf", filename)

	report, name, err := svc.AnalyticsReport(context.Background(), domain.RangeAll)
	require.NoError(t, err)
	assert.NotEmpty(t, report)
	assert.Equal(t, "REPORT_ALL_20261018.pdf", name)

	_, _, err = svc.BookingVoucher(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))
}
