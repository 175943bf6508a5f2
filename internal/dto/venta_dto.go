package dto

import "github.com/shopspring/decimal"

// ─── Filter ─────────────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /venta.
// Both fields optional; month alone filters that month of the current year.
type VentaFilter struct {
	Year  int `form:"year"  validate:"omitempty,min=2000,max=2200"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}

// ─── Request DTOs ───────────────────────────────────────────────────────────

type DetalleVentaRequest struct {
	// ID is only meaningful on update: present = modify that row in place,
	// absent = append a new row to the venta.
	ID            *string          `json:"id"             validate:"omitempty,uuid"`
	ProductoID    string           `json:"productoid"     validate:"required,uuid"`
	ProductName   string           `json:"productname"    validate:"omitempty,max=255"`
	Quantity      int              `json:"quantity"       validate:"required,min=1"`
	Price         decimal.Decimal  `json:"price"          validate:"required,gt=0"`
	IvaPercentage *decimal.Decimal `json:"iva_percentage" validate:"omitempty,min=0,max=100"`
	Discount      *decimal.Decimal `json:"discount"       validate:"omitempty,min=0,max=100"`
}

type CrearVentaRequest struct {
	Total         decimal.Decimal       `json:"total"           validate:"required,gt=0"`
	Payment       decimal.Decimal       `json:"payment"         validate:"min=0"`
	PaymentMethod *string               `json:"payment_method"  validate:"omitempty,max=100"`
	ClienteID     *string               `json:"clienteid"       validate:"omitempty,uuid"`
	IsOnCredit    bool                  `json:"is_on_credit"`
	DeudaAmount   *decimal.Decimal      `json:"deuda_amount"    validate:"omitempty,min=0"`
	DueDate       *string               `json:"due_date"        validate:"omitempty,datetime=2006-01-02"`
	Detalles      []DetalleVentaRequest `json:"detalles_ventas" validate:"required,min=1,dive"`
}

// ActualizarVentaRequest differs from create in that the cliente is
// mandatory: the edit form always operates on an identified sale.
type ActualizarVentaRequest struct {
	Total         decimal.Decimal       `json:"total"           validate:"required,gt=0"`
	Payment       decimal.Decimal       `json:"payment"         validate:"min=0"`
	PaymentMethod *string               `json:"payment_method"  validate:"omitempty,max=100"`
	ClienteID     string                `json:"clienteid"       validate:"required,uuid"`
	IsOnCredit    bool                  `json:"is_on_credit"`
	DeudaAmount   *decimal.Decimal      `json:"deuda_amount"    validate:"omitempty,min=0"`
	DueDate       *string               `json:"due_date"        validate:"omitempty,datetime=2006-01-02"`
	Detalles      []DetalleVentaRequest `json:"detalles_ventas" validate:"omitempty,dive"`
}

// ─── Response DTOs ──────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ID            string          `json:"id"`
	ProductoID    string          `json:"productoid"`
	ProductName   string          `json:"productname"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	IvaPercentage decimal.Decimal `json:"iva_percentage"`
	Discount      decimal.Decimal `json:"discount"`
	SaleDate      string          `json:"sale_date"`
}

type VentaResponse struct {
	ID            string                 `json:"id"`
	NegocioID     string                 `json:"negocioid"`
	ClienteID     *string                `json:"clienteid"`
	ClienteName   *string                `json:"cliente_name,omitempty"`
	Payment       decimal.Decimal        `json:"payment"`
	Total         decimal.Decimal        `json:"total"`
	BalanceDue    decimal.Decimal        `json:"balance_due"`
	Status        string                 `json:"status"`
	PaymentMethod *string                `json:"payment_method"`
	Detalles      []DetalleVentaResponse `json:"detalles_ventas"`
	CreatedAt     string                 `json:"created_at"`
}
