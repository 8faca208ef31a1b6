package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the four known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a customer reservation for a tour or transfer.
type Booking struct {
	ID             int64         `json:"id"`
	CustomerName   string        `json:"customerName" validate:"required,max=255"`
	CustomerPhone  string        `json:"customerPhone" validate:"required,max=50"`
	CustomerEmail  string        `json:"customerEmail,omitempty" validate:"omitempty,email"`
	TourID         int64         `json:"tourId,omitempty"`
	TourTitle      string        `json:"tourTitle" validate:"max=255"`
	TripDate       string        `json:"tripDate"`
	PickupLocation string        `json:"pickupLocation,omitempty"`
	Passengers     int           `json:"passengers" validate:"gte=0"`
	Status         BookingStatus `json:"status"`
	Price          int64         `json:"price" validate:"gte=0"`
	PriceDisplay   string        `json:"priceDisplay"`
	PromoCode      string        `json:"promoCode,omitempty"`
	DriverID       int64         `json:"driverId,omitempty"`
	DriverName     string        `json:"driverName,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Confirmed reports whether the booking counts as revenue.
func (b Booking) Confirmed() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCompleted
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	CustomerName   *string `json:"customerName"`
	CustomerPhone  *string `json:"customerPhone"`
	CustomerEmail  *string `json:"customerEmail"`
	TourTitle      *string `json:"tourTitle"`
	TripDate       *string `json:"tripDate"`
	PickupLocation *string `json:"pickupLocation"`
	Passengers     *int    `json:"passengers"`
	Price          *int64  `json:"price"`
	Notes          *string `json:"notes"`
}

// BookingFilter narrows List results.
type BookingFilter struct {
	Status BookingStatus
	Query  string
}
