package dto

import "github.com/shopspring/decimal"

// DeudaFilter is bound from the query string of GET /deuda.
type DeudaFilter struct {
	Year  int `form:"year"  validate:"omitempty,min=2000,max=2200"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}

// DeudaResponse includes the client's name and the sale date so the debts
// table can render without extra round-trips.
type DeudaResponse struct {
	ID          string          `json:"id"`
	ClienteID   string          `json:"cliente_id"`
	ClienteName string          `json:"cliente_name"`
	VentaID     string          `json:"venta_id"`
	VentaDate   string          `json:"venta_date"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *string         `json:"due_date"`
	Status      string          `json:"status"`
}
