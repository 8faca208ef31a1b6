package models

import "time"

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

type PromoCode struct {
	ID            int64        `json:"id"`
	Code          string       `json:"code" validate:"required,max=50"`
	DiscountType  DiscountType `json:"discountType" validate:"oneof=PERCENT FIXED"`
	DiscountValue int64        `json:"discountValue" validate:"gt=0"`
	MaxUses       int          `json:"maxUses" validate:"gte=0"`
	UsedCount     int          `json:"usedCount"`
	Active        bool         `json:"active"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Usable reports whether the code can still be redeemed at now.
func (p PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && !now.Before(*p.ExpiresAt) {
		return false
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return false
	}
	return true
}

// Discount returns the amount taken off amount, never more than amount.
func (p PromoCode) Discount(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	var d int64
	switch p.DiscountType {
	case DiscountPercent:
		pct := p.DiscountValue
		if pct > 100 {
			pct = 100
		}
		d = amount * pct / 100
	case DiscountFixed:
		d = p.DiscountValue
	}
	if d > amount {
		d = amount
	}
	if d < 0 {
		d = 0
	}
	return d
}

type PromoUpdate struct {
	DiscountType  *DiscountType `json:"discountType"`
	DiscountValue *int64        `json:"discountValue"`
	MaxUses       *int          `json:"maxUses"`
	Active        *bool         `json:"active"`
	ExpiresAt     *time.Time    `json:"expiresAt"`
}

// PromoQuote is the result of validating a code against an amount.
type PromoQuote struct {
	Code        string `json:"code"`
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason,omitempty"`
	Amount      int64  `json:"amount"`
	Discount    int64  `json:"discount"`
	FinalAmount int64  `json:"finalAmount"`
}
