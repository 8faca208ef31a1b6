package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "tourdesk/internal/db"
	"tourdesk/internal/domain/models"
)

const bookingColumns = `
	id,
	COALESCE(customer_name, ''),
	COALESCE(customer_phone, ''),
	COALESCE(customer_email, ''),
	COALESCE(tour_id, 0),
	COALESCE(tour_title, ''),
	COALESCE(trip_date, ''),
	COALESCE(pickup_location, ''),
	COALESCE(passengers, 0),
	COALESCE(status, ''),
	COALESCE(price, 0),
	COALESCE(price_display, ''),
	COALESCE(promo_code, ''),
	COALESCE(driver_id, 0),
	COALESCE(driver_name, ''),
	COALESCE(notes, ''),
	created_at,
	updated_at`

type BookingRepository struct {
	DB *sql.DB
}

func scanBooking(s scanner) (models.Booking, error) {
	var b models.Booking
	var status string
	err := s.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&b.TourID,
		&b.TourTitle,
		&b.TripDate,
		&b.PickupLocation,
		&b.Passengers,
		&status,
		&b.Price,
		&b.PriceDisplay,
		&b.PromoCode,
		&b.DriverID,
		&b.DriverName,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	b.Status = models.BookingStatus(status)
	return b, err
}

// List returns bookings newest first, narrowed by f.
func (r BookingRepository) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, string(f.Status))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + q + "%"
		where = append(where, "(customer_name LIKE ? OR customer_phone LIKE ? OR tour_title LIKE ?)")
		args = append(args, like, like, like)
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC, id DESC`, bookingColumns, strings.Join(where, " AND "))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the booking does not exist.
func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

// Create inserts the booking. A promo code is redeemed in the same
// transaction, so a failed insert leaves its usage untouched.
func (r BookingRepository) Create(ctx context.Context, b models.Booking) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if b.PromoCode != "" {
		if err := redeemPromo(ctx, tx, b.PromoCode); err != nil {
			return 0, err
		}
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (
			customer_name, customer_phone, customer_email, tour_id, tour_title, trip_date,
			pickup_location, passengers, status, price, price_display, promo_code, notes
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.CustomerName,
		b.CustomerPhone,
		intdb.NullIfEmpty(b.CustomerEmail),
		intdb.NullIfZero(b.TourID),
		b.TourTitle,
		b.TripDate,
		intdb.NullIfEmpty(b.PickupLocation),
		b.Passengers,
		string(b.Status),
		b.Price,
		b.PriceDisplay,
		intdb.NullIfEmpty(b.PromoCode),
		intdb.NullIfEmpty(b.Notes),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// Update applies only the fields present in u. priceDisplay is written when non-empty.
func (r BookingRepository) Update(ctx context.Context, id int64, u models.BookingUpdate, priceDisplay string) error {
	var p patch
	if u.CustomerName != nil {
		p.set("customer_name", strings.TrimSpace(*u.CustomerName))
	}
	if u.CustomerPhone != nil {
		p.set("customer_phone", strings.TrimSpace(*u.CustomerPhone))
	}
	if u.CustomerEmail != nil {
		p.set("customer_email", intdb.NullIfEmpty(strings.TrimSpace(*u.CustomerEmail)))
	}
	if u.TourTitle != nil {
		p.set("tour_title", strings.TrimSpace(*u.TourTitle))
	}
	if u.TripDate != nil {
		p.set("trip_date", strings.TrimSpace(*u.TripDate))
	}
	if u.PickupLocation != nil {
		p.set("pickup_location", intdb.NullIfEmpty(strings.TrimSpace(*u.PickupLocation)))
	}
	if u.Passengers != nil {
		p.set("passengers", *u.Passengers)
	}
	if u.Price != nil {
		p.set("price", *u.Price)
	}
	if priceDisplay != "" {
		p.set("price_display", priceDisplay)
	}
	if u.Notes != nil {
		p.set("notes", intdb.NullIfEmpty(*u.Notes))
	}
	if p.empty() {
		return nil
	}
	p.args = append(p.args, id)
	_, err := r.DB.ExecContext(ctx, `UPDATE bookings SET `+strings.Join(p.sets, ",")+` WHERE id=?`, p.args...)
	return err
}

// ErrStatusChanged is returned by UpdateStatus when the booking is no longer in the expected status.
var ErrStatusChanged = errors.New("booking status changed concurrently")

// UpdateStatus moves the booking from one status to another. When debt > 0 it
// is charged to driverID in the same transaction, at most once per booking.
// The returned bool reports whether the charge happened.
func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus, driverID, debt int64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=? AND status=?`, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, ErrStatusChanged
	}

	charged := false
	if driverID > 0 && debt > 0 {
		res, err := tx.ExecContext(ctx, `UPDATE bookings SET debt_charged=1 WHERE id=? AND debt_charged=0`, id)
		if err != nil {
			return false, err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			if _, err := tx.ExecContext(ctx, `UPDATE drivers SET debt = debt + ? WHERE id=?`, debt, driverID); err != nil {
				return false, err
			}
			charged = true
		}
	}
	return charged, tx.Commit()
}

func (r BookingRepository) AssignDriver(ctx context.Context, id, driverID int64, driverName string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE bookings SET driver_id=?, driver_name=? WHERE id=?`,
		intdb.NullIfZero(driverID), intdb.NullIfEmpty(driverName), id)
	return err
}

func (r BookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
