package repositories

import (
	"context"
	"database/sql"

	intdb "tourdesk/internal/db"
	"tourdesk/internal/domain/models"
)

type SMSLogRepository struct {
	DB *sql.DB
}

func (r SMSLogRepository) Insert(ctx context.Context, l models.SMSLog) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO sms_logs (phone, message, status, provider_ref, error, booking_id)
		VALUES (?,?,?,?,?,?)`,
		l.Phone,
		l.Message,
		string(l.Status),
		intdb.NullIfEmpty(l.ProviderRef),
		intdb.NullIfEmpty(l.Error),
		intdb.NullIfZero(l.BookingID),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns the newest logs first; limit <= 0 means all.
func (r SMSLogRepository) List(ctx context.Context, limit int) ([]models.SMSLog, error) {
	query := `
		SELECT id, phone, message, status, COALESCE(provider_ref, ''), COALESCE(error, ''), COALESCE(booking_id, 0), created_at
		FROM sms_logs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SMSLog{}
	for rows.Next() {
		var l models.SMSLog
		var status string
		if err := rows.Scan(&l.ID, &l.Phone, &l.Message, &status, &l.ProviderRef, &l.Error, &l.BookingID, &l.CreatedAt); err != nil {
			return out, err
		}
		l.Status = models.SMSStatus(status)
		out = append(out, l)
	}
	return out, rows.Err()
}
