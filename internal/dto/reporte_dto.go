package dto

import "github.com/shopspring/decimal"

// OverviewResponse summarizes the current month for the dashboard header.
type OverviewResponse struct {
	UserName        string          `json:"userName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalBalanceDue decimal.Decimal `json:"totalBalanceDue"`
	QuantityOfSales int64           `json:"quantityOfSales"`
}

// NetRevenueResponse is month sales minus active debt.
type NetRevenueResponse struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalDebt    decimal.Decimal `json:"total_debt"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
}

type VentaPorProducto struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalQuantity int64           `json:"total_quantity"`
}

type VentaPorMetodoPago struct {
	PaymentMethod *string         `json:"payment_method"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// VentaMensual is one month's bucket for the last-months revenue chart.
// Month is formatted YYYY-MM; missing months are zero-filled.
type VentaMensual struct {
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type VentaPorNegocio struct {
	BusinessID string          `json:"business_id"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type AccesosDirectosRequest struct {
	AccesosDirectos string `json:"accesos_directos" validate:"required"`
}
