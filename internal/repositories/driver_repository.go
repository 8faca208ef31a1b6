package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "tourdesk/internal/db"
	"tourdesk/internal/domain/models"
)

const driverColumns = `
	id,
	COALESCE(name, ''),
	COALESCE(phone, ''),
	COALESCE(email, ''),
	COALESCE(car_model, ''),
	COALESCE(car_plate, ''),
	COALESCE(car_color, ''),
	COALESCE(seats, 0),
	COALESCE(base_price, 0),
	COALESCE(price_per_km, 0),
	COALESCE(status, ''),
	COALESCE(debt, 0),
	COALESCE(photo_url, ''),
	COALESCE(license_url, ''),
	created_at,
	updated_at`

// Document kinds a driver can upload.
const (
	DocPhoto   = "photo"
	DocLicense = "license"
)

type DriverRepository struct {
	DB *sql.DB
}

func scanDriver(s scanner) (models.Driver, error) {
	var d models.Driver
	var status string
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.Email,
		&d.CarModel,
		&d.CarPlate,
		&d.CarColor,
		&d.Seats,
		&d.BasePrice,
		&d.PricePerKm,
		&status,
		&d.Debt,
		&d.PhotoURL,
		&d.LicenseURL,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	d.Status = models.DriverStatus(status)
	return d, err
}

// List returns every driver, newest first.
func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	return scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id))
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (name, phone, email, car_model, car_plate, car_color, seats, base_price, price_per_km, status, debt)
		VALUES (?,?,?,?,?,?,?,?,?,?,0)`,
		d.Name,
		d.Phone,
		intdb.NullIfEmpty(d.Email),
		intdb.NullIfEmpty(d.CarModel),
		intdb.NullIfEmpty(d.CarPlate),
		intdb.NullIfEmpty(d.CarColor),
		d.Seats,
		d.BasePrice,
		d.PricePerKm,
		string(d.Status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, id int64, u models.DriverUpdate) error {
	var p patch
	if u.Name != nil {
		p.set("name", strings.TrimSpace(*u.Name))
	}
	if u.Phone != nil {
		p.set("phone", strings.TrimSpace(*u.Phone))
	}
	if u.Email != nil {
		p.set("email", intdb.NullIfEmpty(strings.TrimSpace(*u.Email)))
	}
	if u.CarModel != nil {
		p.set("car_model", intdb.NullIfEmpty(strings.TrimSpace(*u.CarModel)))
	}
	if u.CarPlate != nil {
		p.set("car_plate", intdb.NullIfEmpty(strings.ToUpper(strings.TrimSpace(*u.CarPlate))))
	}
	if u.CarColor != nil {
		p.set("car_color", intdb.NullIfEmpty(strings.TrimSpace(*u.CarColor)))
	}
	if u.Seats != nil {
		p.set("seats", *u.Seats)
	}
	if u.BasePrice != nil {
		p.set("base_price", *u.BasePrice)
	}
	if u.PricePerKm != nil {
		p.set("price_per_km", *u.PricePerKm)
	}
	if p.empty() {
		return nil
	}
	p.args = append(p.args, id)
	_, err := r.DB.ExecContext(ctx, `UPDATE drivers SET `+strings.Join(p.sets, ",")+` WHERE id=?`, p.args...)
	return err
}

func (r DriverRepository) UpdateStatus(ctx context.Context, id int64, status models.DriverStatus) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE drivers SET status=? WHERE id=?`, string(status), id)
	return err
}

// SettleDebt subtracts amount from the driver's debt, never going below zero.
func (r DriverRepository) SettleDebt(ctx context.Context, id, amount int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE drivers SET debt = GREATEST(debt - ?, 0) WHERE id=?`, amount, id)
	return err
}

func (r DriverRepository) SetDocument(ctx context.Context, id int64, kind, url string) error {
	col := ""
	switch kind {
	case DocPhoto:
		col = "photo_url"
	case DocLicense:
		col = "license_url"
	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}
	_, err := r.DB.ExecContext(ctx, `UPDATE drivers SET `+col+`=? WHERE id=?`, url, id)
	return err
}

func (r DriverRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
