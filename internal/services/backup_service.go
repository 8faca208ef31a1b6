package services

import (
	"context"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

// BackupService assembles a full export of every collection.
type BackupService struct {
	Bookings BookingStore
	Drivers  DriverStore
	Tours    TourStore
	Promos   PromoStore
	Settings SettingsStore
	SMSLogs  SMSLogStore
	Now      func() time.Time
}

const backupSMSLogLimit = 1000

func (s BackupService) Export(ctx context.Context, rc domain.RequestContext) (models.Backup, error) {
	out := models.Backup{GeneratedAt: clock(s.Now)}
	var err error
	if out.Bookings, err = s.Bookings.List(ctx, models.BookingFilter{}); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export bookings", Err: err}
	}
	if out.Drivers, err = s.Drivers.List(ctx); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export drivers", Err: err}
	}
	if out.Tours, err = s.Tours.List(ctx, false); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export tours", Err: err}
	}
	if out.PromoCodes, err = s.Promos.List(ctx); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export promo codes", Err: err}
	}
	if out.Settings, _, err = s.Settings.Get(ctx); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export settings", Err: err}
	}
	if out.SMSLogs, err = s.SMSLogs.List(ctx, backupSMSLogLimit); err != nil {
		return models.Backup{}, domain.InternalError{Msg: "failed to export sms logs", Err: err}
	}
	normalizeBackup(&out)
	utils.LogEvent(rc.RequestID, "backup", "export", "by="+rc.Actor())
	return out, nil
}

// normalizeBackup keeps empty collections as [] in the JSON dump.
func normalizeBackup(b *models.Backup) {
	if b.Bookings == nil {
		b.Bookings = []models.Booking{}
	}
	if b.Drivers == nil {
		b.Drivers = []models.Driver{}
	}
	if b.Tours == nil {
		b.Tours = []models.Tour{}
	}
	if b.PromoCodes == nil {
		b.PromoCodes = []models.PromoCode{}
	}
	if b.SMSLogs == nil {
		b.SMSLogs = []models.SMSLog{}
	}
}
