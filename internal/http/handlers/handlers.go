// Package handlers holds the gin handlers of the admin API.
package handlers

import (
	"database/sql"

	"tourdesk/internal/services"
)

// Handlers carries the services every route needs.
type Handlers struct {
	DB        *sql.DB
	Bookings  services.BookingService
	Drivers   services.DriverService
	Tours     services.TourService
	Promos    services.PromoService
	Settings  services.SettingsService
	SMS       services.SMSService
	Analytics services.AnalyticsService
	Docs      services.DocsService
	Backup    services.BackupService
	Auth      services.AuthService
}
