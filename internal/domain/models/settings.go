package models

import "time"

// Settings is the single operational configuration record.
type Settings struct {
	CommissionRate  float64   `json:"commissionRate"`
	SMSEnabled      bool      `json:"smsEnabled"`
	SMSSender       string    `json:"smsSender"`
	AdminPhone      string    `json:"adminPhone"`
	SupportEmail    string    `json:"supportEmail"`
	AutoConfirm     bool      `json:"autoConfirm"`
	MaintenanceMode bool      `json:"maintenanceMode"`
	Currency        string    `json:"currency"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultSettings is used while no settings row exists yet.
func DefaultSettings() Settings {
	return Settings{Currency: "IDR"}
}

type SettingsUpdate struct {
	CommissionRate  *float64 `json:"commissionRate"`
	SMSEnabled      *bool    `json:"smsEnabled"`
	SMSSender       *string  `json:"smsSender"`
	AdminPhone      *string  `json:"adminPhone"`
	SupportEmail    *string  `json:"supportEmail"`
	AutoConfirm     *bool    `json:"autoConfirm"`
	MaintenanceMode *bool    `json:"maintenanceMode"`
	Currency        *string  `json:"currency"`
}
