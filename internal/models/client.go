package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is read-only reference data owned by the intake subsystem. The
// lifecycle engine consumes it by id and never mutates it.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
