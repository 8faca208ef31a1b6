package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

type SettingsService struct {
	Repo SettingsStore
}

// Get returns the stored settings or the defaults when none were saved yet.
func (s SettingsService) Get(ctx context.Context) (models.Settings, error) {
	st, _, err := s.Repo.Get(ctx)
	if err != nil {
		return models.Settings{}, domain.InternalError{Msg: "failed to load settings", Err: err}
	}
	return st, nil
}

// Update merges u into the current settings and stores the result.
func (s SettingsService) Update(ctx context.Context, rc domain.RequestContext, u models.SettingsUpdate) (models.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	next, err := ApplySettingsUpdate(current, u)
	if err != nil {
		return models.Settings{}, err
	}
	if err := s.Repo.Save(ctx, next); err != nil {
		return models.Settings{}, domain.InternalError{Msg: "failed to save settings", Err: err}
	}
	utils.LogEvent(rc.RequestID, "settings", "update", fmt.Sprintf("by=%s rate=%.4f sms=%t", rc.Actor(), next.CommissionRate, next.SMSEnabled))
	return s.Get(ctx)
}

// ApplySettingsUpdate assembles a settings record from a partial payload.
func ApplySettingsUpdate(cur models.Settings, u models.SettingsUpdate) (models.Settings, error) {
	next := cur
	if u.CommissionRate != nil {
		r := *u.CommissionRate
		if math.IsNaN(r) || r < 0 || r > 1 {
			return cur, domain.ValidationError{Field: "commissionRate", Msg: "must be between 0 and 1"}
		}
		next.CommissionRate = r
	}
	if u.SMSEnabled != nil {
		next.SMSEnabled = *u.SMSEnabled
	}
	if u.SMSSender != nil {
		sender := strings.TrimSpace(*u.SMSSender)
		if len(sender) > 11 {
			return cur, domain.ValidationError{Field: "smsSender", Msg: "at most 11 characters"}
		}
		next.SMSSender = sender
	}
	if u.AdminPhone != nil {
		next.AdminPhone = utils.NormalizePhone(*u.AdminPhone)
	}
	if u.SupportEmail != nil {
		next.SupportEmail = strings.TrimSpace(*u.SupportEmail)
		if next.SupportEmail != "" {
			if err := validate.Var(next.SupportEmail, "email"); err != nil {
				return cur, domain.ValidationError{Field: "supportEmail", Msg: "must be a valid email", Err: err}
			}
		}
	}
	if u.AutoConfirm != nil {
		next.AutoConfirm = *u.AutoConfirm
	}
	if u.MaintenanceMode != nil {
		next.MaintenanceMode = *u.MaintenanceMode
	}
	if u.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*u.Currency))
		if len(c) != 3 {
			return cur, domain.ValidationError{Field: "currency", Msg: "must be a 3-letter code"}
		}
		next.Currency = c
	}
	return next, nil
}
