package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

type PromoService struct {
	Repo PromoStore
	Now  func() time.Time
}

// QuotePromo prices amount with promo at now without redeeming it.
func QuotePromo(p models.PromoCode, amount int64, now time.Time) models.PromoQuote {
	q := models.PromoQuote{Code: p.Code, Amount: amount, FinalAmount: amount}
	if !p.Usable(now) {
		switch {
		case !p.Active:
			q.Reason = "code is inactive"
		case p.ExpiresAt != nil && !now.Before(*p.ExpiresAt):
			q.Reason = "code has expired"
		default:
			q.Reason = "usage limit reached"
		}
		return q
	}
	q.Valid = true
	q.Discount = p.Discount(amount)
	q.FinalAmount = amount - q.Discount
	return q
}

func (s PromoService) List(ctx context.Context) ([]models.PromoCode, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load promo codes", Err: err}
	}
	return out, nil
}

func (s PromoService) Create(ctx context.Context, rc domain.RequestContext, in models.PromoCode) (models.PromoCode, error) {
	p := in
	p.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	p.DiscountType = models.DiscountType(strings.ToUpper(strings.TrimSpace(string(in.DiscountType))))
	if err := validateStruct(p); err != nil {
		return models.PromoCode{}, err
	}
	if strings.ContainsAny(p.Code, " \t") {
		return models.PromoCode{}, domain.ValidationError{Field: "code", Msg: "must not contain spaces"}
	}
	if p.DiscountType == models.DiscountPercent && p.DiscountValue > 100 {
		return models.PromoCode{}, domain.ValidationError{Field: "discountValue", Msg: "percent must be <= 100"}
	}

	id, err := s.Repo.Create(ctx, p)
	if err != nil {
		if domain.IsConflict(err) {
			return models.PromoCode{}, err
		}
		return models.PromoCode{}, domain.InternalError{Msg: "failed to create promo code", Err: err}
	}
	utils.LogEvent(rc.RequestID, "promo", "create", fmt.Sprintf("id=%d code=%s by=%s", id, p.Code, rc.Actor()))
	return s.get(ctx, id)
}

func (s PromoService) Update(ctx context.Context, rc domain.RequestContext, id int64, u models.PromoUpdate) (models.PromoCode, error) {
	cur, err := s.get(ctx, id)
	if err != nil {
		return models.PromoCode{}, err
	}
	dt := cur.DiscountType
	if u.DiscountType != nil {
		dt = models.DiscountType(strings.ToUpper(strings.TrimSpace(string(*u.DiscountType))))
		if dt != models.DiscountPercent && dt != models.DiscountFixed {
			return models.PromoCode{}, domain.ValidationError{Field: "discountType", Msg: "must be one of PERCENT FIXED"}
		}
		u.DiscountType = &dt
	}
	val := cur.DiscountValue
	if u.DiscountValue != nil {
		val = *u.DiscountValue
		if val <= 0 {
			return models.PromoCode{}, domain.ValidationError{Field: "discountValue", Msg: "must be > 0"}
		}
	}
	if dt == models.DiscountPercent && val > 100 {
		return models.PromoCode{}, domain.ValidationError{Field: "discountValue", Msg: "percent must be <= 100"}
	}
	if u.MaxUses != nil && *u.MaxUses < 0 {
		return models.PromoCode{}, domain.ValidationError{Field: "maxUses", Msg: "must be >= 0"}
	}

	if err := s.Repo.Update(ctx, id, u); err != nil {
		return models.PromoCode{}, domain.InternalError{Msg: "failed to update promo code", Err: err}
	}
	utils.LogEvent(rc.RequestID, "promo", "update", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.get(ctx, id)
}

func (s PromoService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete promo code", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "promo code"}
	}
	utils.LogEvent(rc.RequestID, "promo", "delete", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return nil
}

// Validate checks code against amount without consuming a usage.
func (s PromoService) Validate(ctx context.Context, code string, amount int64) (models.PromoQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.PromoQuote{}, domain.ValidationError{Field: "code", Msg: "is required"}
	}
	if amount < 0 {
		return models.PromoQuote{}, domain.ValidationError{Field: "amount", Msg: "must be >= 0"}
	}
	p, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(lookupErr("promo code", err)) {
			return models.PromoQuote{Code: code, Amount: amount, FinalAmount: amount, Reason: "unknown code"}, nil
		}
		return models.PromoQuote{}, domain.InternalError{Err: err}
	}
	return QuotePromo(p, amount, clock(s.Now)), nil
}

func (s PromoService) get(ctx context.Context, id int64) (models.PromoCode, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.PromoCode{}, lookupErr("promo code", err)
	}
	return p, nil
}
