package models

import "time"

type SMSStatus string

const (
	SMSSent    SMSStatus = "SENT"
	SMSFailed  SMSStatus = "FAILED"
	SMSSkipped SMSStatus = "SKIPPED"
)

type SMSLog struct {
	ID          int64     `json:"id"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	Status      SMSStatus `json:"status"`
	ProviderRef string    `json:"providerRef,omitempty"`
	Error       string    `json:"error,omitempty"`
	BookingID   int64     `json:"bookingId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
