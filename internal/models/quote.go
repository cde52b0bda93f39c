package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote status values. Approved, cancelled and expired are terminal.
const (
	QuoteStatusPending   = "pendente"
	QuoteStatusApproved  = "aprovado"
	QuoteStatusCancelled = "cancelado"
	QuoteStatusExpired   = "expirado"
)

// QuoteValidityDays is the fixed hold window granted at creation.
const QuoteValidityDays = 7

// Quote ("orçamento") is a time-limited single-service price hold for a
// client, convertible into a sale while still pending.
type Quote struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ClientID    uuid.UUID  `json:"client_id" db:"client_id"`
	ProviderID  uuid.UUID  `json:"provider_id" db:"provider_id"`
	ServiceID   uuid.UUID  `json:"service_id" db:"service_id"`
	CostValue   float64    `json:"cost_value" db:"cost_value"`
	SaleValue   float64    `json:"sale_value" db:"sale_value"`
	DiscountPct float64    `json:"discount_pct" db:"discount_pct"`
	FinalValue  float64    `json:"final_value" db:"final_value"`
	ValidUntil  time.Time  `json:"valid_until" db:"valid_until"`
	Status      string     `json:"status" db:"status"`
	Notes       *string    `json:"notes" db:"notes"`
	SaleID      *uuid.UUID `json:"sale_id" db:"sale_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// EffectiveQuoteStatus applies lazy expiration: a pending quote past its
// validity deadline reads as expired whether or not a sweep persisted it.
func EffectiveQuoteStatus(q *Quote, now time.Time) string {
	if q.Status == QuoteStatusPending && now.After(q.ValidUntil) {
		return QuoteStatusExpired
	}
	return q.Status
}

// QuoteFinalValue applies the discount percentage to the sale value.
func QuoteFinalValue(saleValue, discountPct float64) float64 {
	return saleValue * (1 - discountPct/100)
}
