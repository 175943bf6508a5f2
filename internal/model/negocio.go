package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Negocio is the tenant. Every usuario, cliente, producto and venta belongs
// to exactly one negocio and all queries are scoped by it.
type Negocio struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null"`
	Location *string
	// IvaPercentage is the tax rate the frontend applies to new sales.
	IvaPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
