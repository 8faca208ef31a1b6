package models

import "time"

type DriverStatus string

const (
	DriverActive   DriverStatus = "ACTIVE"
	DriverPending  DriverStatus = "PENDING"
	DriverInactive DriverStatus = "INACTIVE"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverActive, DriverPending, DriverInactive:
		return true
	}
	return false
}

// Driver is a transfer driver registered on the marketplace.
type Driver struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name" validate:"required,max=255"`
	Phone      string       `json:"phone" validate:"required,max=50"`
	Email      string       `json:"email,omitempty" validate:"omitempty,email"`
	CarModel   string       `json:"carModel"`
	CarPlate   string       `json:"carPlate"`
	CarColor   string       `json:"carColor,omitempty"`
	Seats      int          `json:"seats" validate:"gte=0,lte=60"`
	BasePrice  int64        `json:"basePrice" validate:"gte=0"`
	PricePerKm int64        `json:"pricePerKm" validate:"gte=0"`
	Status     DriverStatus `json:"status"`
	Debt       int64        `json:"debt"`
	PhotoURL   string       `json:"photoUrl,omitempty"`
	LicenseURL string       `json:"licenseUrl,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type DriverUpdate struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	CarModel   *string `json:"carModel"`
	CarPlate   *string `json:"carPlate"`
	CarColor   *string `json:"carColor"`
	Seats      *int    `json:"seats"`
	BasePrice  *int64  `json:"basePrice"`
	PricePerKm *int64  `json:"pricePerKm"`
}

// DriverQuery drives search and ordering of the driver list.
type DriverQuery struct {
	Search string
	Sort   string // name, debt, createdAt, status
	Desc   bool
}
