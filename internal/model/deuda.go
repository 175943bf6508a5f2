package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deuda is the outstanding amount of a credit sale. The composite unique
// index makes (cliente, venta) a declared natural key, so the upsert in the
// sale reconciler can never produce duplicate rows.
// Status: "Activo" once created; rows are deleted when settled.
type Deuda struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_deudas_cliente_venta"`
	VentaID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_deudas_cliente_venta"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate   *time.Time
	Status    string `gorm:"type:varchar(20);not null;default:'Activo'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Venta   *Venta   `gorm:"foreignKey:VentaID"`
}
