package repositories

import (
	"context"
	"database/sql"
	"errors"

	"tourdesk/internal/domain/models"
)

const settingsRowID = 1

type SettingsRepository struct {
	DB *sql.DB
}

// Get returns the stored settings, or defaults with found=false when no row exists.
func (r SettingsRepository) Get(ctx context.Context) (models.Settings, bool, error) {
	var s models.Settings
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(commission_rate, 0),
			sms_enabled,
			COALESCE(sms_sender, ''),
			COALESCE(admin_phone, ''),
			COALESCE(support_email, ''),
			auto_confirm,
			maintenance_mode,
			COALESCE(currency, ''),
			updated_at
		FROM settings WHERE id=? LIMIT 1`, settingsRowID).Scan(
		&s.CommissionRate,
		&s.SMSEnabled,
		&s.SMSSender,
		&s.AdminPhone,
		&s.SupportEmail,
		&s.AutoConfirm,
		&s.MaintenanceMode,
		&s.Currency,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), false, nil
	}
	if err != nil {
		return models.Settings{}, false, err
	}
	if s.Currency == "" {
		s.Currency = models.DefaultSettings().Currency
	}
	return s, true, nil
}

// Save upserts the singleton row.
func (r SettingsRepository) Save(ctx context.Context, s models.Settings) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (id, commission_rate, sms_enabled, sms_sender, admin_phone, support_email, auto_confirm, maintenance_mode, currency)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			commission_rate=VALUES(commission_rate),
			sms_enabled=VALUES(sms_enabled),
			sms_sender=VALUES(sms_sender),
			admin_phone=VALUES(admin_phone),
			support_email=VALUES(support_email),
			auto_confirm=VALUES(auto_confirm),
			maintenance_mode=VALUES(maintenance_mode),
			currency=VALUES(currency)`,
		settingsRowID,
		s.CommissionRate,
		s.SMSEnabled,
		s.SMSSender,
		s.AdminPhone,
		s.SupportEmail,
		s.AutoConfirm,
		s.MaintenanceMode,
		s.Currency,
	)
	return err
}
