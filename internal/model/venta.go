package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a sale. ClienteID is nullable: a cash sale needs no client, the
// credit flow does. BalanceDue is kept equal to max(total-payment declared
// as deuda, 0); the deudas table mirrors it with at most one row per
// (cliente, venta) pair.
// Status: "Pagado" | "Pagado Parcialmente"
type Venta struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NegocioID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClienteID     *uuid.UUID `gorm:"type:uuid;index"`
	Payment       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceDue    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(30);not null;default:'Pagado'"`
	PaymentMethod *string         `gorm:"type:varchar(100)"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
}

// DetalleVenta is a sale line item. ProductName snapshots the product's name
// at sale time so later catalog edits do not rewrite history.
type DetalleVenta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName   string          `gorm:"not null"`
	Quantity      int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IvaPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SaleDate      time.Time       `gorm:"not null;default:now()"`
}
