package models

import "time"

// Backup is the full export handed out for download.
type Backup struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Bookings    []Booking   `json:"bookings"`
	Drivers     []Driver    `json:"drivers"`
	Tours       []Tour      `json:"tours"`
	PromoCodes  []PromoCode `json:"promoCodes"`
	Settings    Settings    `json:"settings"`
	SMSLogs     []SMSLog    `json:"smsLogs"`
}
