package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "tourdesk/internal/db"
	"tourdesk/internal/domain/models"
)

const tourColumns = `
	id,
	COALESCE(title, ''),
	COALESCE(description, ''),
	COALESCE(location, ''),
	COALESCE(duration, ''),
	COALESCE(price, 0),
	COALESCE(image_url, ''),
	active,
	created_at,
	updated_at`

type TourRepository struct {
	DB *sql.DB
}

func scanTour(s scanner) (models.Tour, error) {
	var t models.Tour
	err := s.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Location,
		&t.Duration,
		&t.Price,
		&t.ImageURL,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r TourRepository) List(ctx context.Context, activeOnly bool) ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours`
	if activeOnly {
		query += ` WHERE active=1`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TourRepository) GetByID(ctx context.Context, id int64) (models.Tour, error) {
	return scanTour(r.DB.QueryRowContext(ctx, `SELECT `+tourColumns+` FROM tours WHERE id=? LIMIT 1`, id))
}

func (r TourRepository) Create(ctx context.Context, t models.Tour) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO tours (title, description, location, duration, price, active)
		VALUES (?,?,?,?,?,?)`,
		t.Title,
		intdb.NullIfEmpty(t.Description),
		intdb.NullIfEmpty(t.Location),
		intdb.NullIfEmpty(t.Duration),
		t.Price,
		t.Active,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TourRepository) Update(ctx context.Context, id int64, u models.TourUpdate) error {
	var p patch
	if u.Title != nil {
		p.set("title", strings.TrimSpace(*u.Title))
	}
	if u.Description != nil {
		p.set("description", intdb.NullIfEmpty(*u.Description))
	}
	if u.Location != nil {
		p.set("location", intdb.NullIfEmpty(strings.TrimSpace(*u.Location)))
	}
	if u.Duration != nil {
		p.set("duration", intdb.NullIfEmpty(strings.TrimSpace(*u.Duration)))
	}
	if u.Price != nil {
		p.set("price", *u.Price)
	}
	if u.Active != nil {
		p.set("active", *u.Active)
	}
	if p.empty() {
		return nil
	}
	p.args = append(p.args, id)
	_, err := r.DB.ExecContext(ctx, `UPDATE tours SET `+strings.Join(p.sets, ",")+` WHERE id=?`, p.args...)
	return err
}

func (r TourRepository) SetImage(ctx context.Context, id int64, url string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE tours SET image_url=? WHERE id=?`, url, id)
	return err
}

func (r TourRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tours WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
