package services

import (
	"context"
	"fmt"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

// SMSService sends text messages and records every attempt in sms_logs.
type SMSService struct {
	Sender   SMSSender
	LogStore SMSLogStore
	Settings SettingsStore
}

// Send delivers an admin-composed message regardless of the SMS toggle.
func (s SMSService) Send(ctx context.Context, rc domain.RequestContext, phone, message string) (models.SMSLog, error) {
	phone = utils.NormalizePhone(phone)
	message = strings.TrimSpace(message)
	if phone == "" {
		return models.SMSLog{}, domain.ValidationError{Field: "phone", Msg: "is required"}
	}
	if message == "" {
		return models.SMSLog{}, domain.ValidationError{Field: "message", Msg: "is required"}
	}
	entry := s.deliver(ctx, rc, phone, message, 0)
	if entry.Status == models.SMSFailed {
		return entry, domain.InternalError{Msg: "sms delivery failed: " + entry.Error}
	}
	return entry, nil
}

// Notify sends an automatic notification when SMS is enabled in settings.
// Failures are logged and recorded, never returned.
func (s SMSService) Notify(ctx context.Context, rc domain.RequestContext, phone, message string, bookingID int64) models.SMSLog {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return models.SMSLog{Status: models.SMSSkipped, Error: "no phone number"}
	}
	enabled := false
	if s.Settings != nil {
		if st, _, err := s.Settings.Get(ctx); err == nil {
			enabled = st.SMSEnabled
		}
	}
	if !enabled {
		entry := models.SMSLog{Phone: phone, Message: message, Status: models.SMSSkipped, Error: "sms disabled", BookingID: bookingID}
		s.record(ctx, rc, &entry)
		return entry
	}
	return s.deliver(ctx, rc, phone, message, bookingID)
}

// Logs returns the newest sms log entries.
func (s SMSService) Logs(ctx context.Context, limit int) ([]models.SMSLog, error) {
	logs, err := s.LogStore.List(ctx, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load sms logs", Err: err}
	}
	return logs, nil
}

func (s SMSService) deliver(ctx context.Context, rc domain.RequestContext, phone, message string, bookingID int64) models.SMSLog {
	entry := models.SMSLog{Phone: phone, Message: message, BookingID: bookingID}
	if s.Sender == nil {
		entry.Status = models.SMSFailed
		entry.Error = "sms gateway not configured"
	} else if ref, err := s.Sender.Send(ctx, s.senderID(ctx), phone, message); err != nil {
		entry.Status = models.SMSFailed
		entry.Error = err.Error()
	} else {
		entry.Status = models.SMSSent
		entry.ProviderRef = ref
	}
	s.record(ctx, rc, &entry)
	return entry
}

func (s SMSService) senderID(ctx context.Context) string {
	if s.Settings == nil {
		return ""
	}
	st, _, err := s.Settings.Get(ctx)
	if err != nil {
		return ""
	}
	return st.SMSSender
}

func (s SMSService) record(ctx context.Context, rc domain.RequestContext, entry *models.SMSLog) {
	utils.LogEvent(rc.RequestID, "sms", "send", fmt.Sprintf("status=%s booking_id=%d", entry.Status, entry.BookingID))
	if s.LogStore == nil {
		return
	}
	id, err := s.LogStore.Insert(ctx, *entry)
	if err != nil {
		utils.LogError(rc.RequestID, "sms", "record_log", err)
		return
	}
	entry.ID = id
}
