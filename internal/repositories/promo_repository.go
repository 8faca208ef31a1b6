package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

const promoColumns = `
	id,
	code,
	discount_type,
	discount_value,
	COALESCE(max_uses, 0),
	COALESCE(used_count, 0),
	active,
	expires_at,
	created_at`

type PromoRepository struct {
	DB *sql.DB
}

func scanPromo(s scanner) (models.PromoCode, error) {
	var p models.PromoCode
	var dt string
	var expires sql.NullTime
	err := s.Scan(
		&p.ID,
		&p.Code,
		&dt,
		&p.DiscountValue,
		&p.MaxUses,
		&p.UsedCount,
		&p.Active,
		&expires,
		&p.CreatedAt,
	)
	p.DiscountType = models.DiscountType(dt)
	if expires.Valid {
		t := expires.Time
		p.ExpiresAt = &t
	}
	return p, err
}

func (r PromoRepository) List(ctx context.Context) ([]models.PromoCode, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+promoColumns+` FROM promo_codes ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PromoCode{}
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PromoRepository) GetByID(ctx context.Context, id int64) (models.PromoCode, error) {
	return scanPromo(r.DB.QueryRowContext(ctx, `SELECT `+promoColumns+` FROM promo_codes WHERE id=? LIMIT 1`, id))
}

func (r PromoRepository) GetByCode(ctx context.Context, code string) (models.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return scanPromo(r.DB.QueryRowContext(ctx, `SELECT `+promoColumns+` FROM promo_codes WHERE code=? LIMIT 1`, code))
}

// Create returns domain.ConflictError when the code already exists.
func (r PromoRepository) Create(ctx context.Context, p models.PromoCode) (int64, error) {
	var expires any
	if p.ExpiresAt != nil {
		expires = *p.ExpiresAt
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO promo_codes (code, discount_type, discount_value, max_uses, used_count, active, expires_at)
		VALUES (?,?,?,?,0,?,?)`,
		p.Code, string(p.DiscountType), p.DiscountValue, p.MaxUses, p.Active, expires,
	)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "promo code", Msg: "code " + p.Code + " already exists", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r PromoRepository) Update(ctx context.Context, id int64, u models.PromoUpdate) error {
	var p patch
	if u.DiscountType != nil {
		p.set("discount_type", string(*u.DiscountType))
	}
	if u.DiscountValue != nil {
		p.set("discount_value", *u.DiscountValue)
	}
	if u.MaxUses != nil {
		p.set("max_uses", *u.MaxUses)
	}
	if u.Active != nil {
		p.set("active", *u.Active)
	}
	if u.ExpiresAt != nil {
		p.set("expires_at", *u.ExpiresAt)
	}
	if p.empty() {
		return nil
	}
	p.args = append(p.args, id)
	_, err := r.DB.ExecContext(ctx, `UPDATE promo_codes SET `+strings.Join(p.sets, ",")+` WHERE id=?`, p.args...)
	return err
}

// ErrPromoExhausted is returned when a booking names a code with no usage left.
var ErrPromoExhausted = errors.New("promo code usage exhausted")

// redeemPromo counts one usage inside tx, guarded against exceeding max_uses.
func redeemPromo(ctx context.Context, tx *sql.Tx, code string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE promo_codes SET used_count = used_count + 1
		WHERE code=? AND active=1 AND (max_uses=0 OR used_count < max_uses)`,
		strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPromoExhausted
	}
	return nil
}

func (r PromoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM promo_codes WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
