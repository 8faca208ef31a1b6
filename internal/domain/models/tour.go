package models

import "time"

// Tour is a sellable tour package.
type Tour struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	Price       int64     `json:"price" validate:"gte=0"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TourUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Duration    *string `json:"duration"`
	Price       *int64  `json:"price"`
	Active      *bool   `json:"active"`
}
