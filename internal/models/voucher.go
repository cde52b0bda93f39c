package models

import (
	"time"

	"github.com/google/uuid"
)

// Voucher ("guia") is the authorization instrument a provider presents to
// justify performing and billing a service. Exactly one voucher exists per
// sale item and both are created in the same transaction.
type Voucher struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TenantID   uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	AuthCode   string     `json:"auth_code" db:"auth_code"`
	ClientID   uuid.UUID  `json:"client_id" db:"client_id"`
	ProviderID uuid.UUID  `json:"provider_id" db:"provider_id"`
	ServiceID  uuid.UUID  `json:"service_id" db:"service_id"`
	SaleItemID uuid.UUID  `json:"sale_item_id" db:"sale_item_id"`
	Value      float64    `json:"value" db:"value"`
	Status     string     `json:"status" db:"status"`
	IssuedAt   time.Time  `json:"issued_at" db:"issued_at"`
	RealizedAt *time.Time `json:"realized_at" db:"realized_at"`
	InvoicedAt *time.Time `json:"invoiced_at" db:"invoiced_at"`
	PaidAt     *time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
