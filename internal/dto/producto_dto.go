package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"required,min=1"`
	Barcode     string          `json:"barcode"     validate:"required,min=5,max=100"`
	Price       decimal.Decimal `json:"price"       validate:"required,gt=0"`
}

type ActualizarProductoRequest = CrearProductoRequest

type ProductoResponse struct {
	ID          string          `json:"id"`
	NegocioID   string          `json:"negocioid"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Barcode     string          `json:"barcode"`
	Price       decimal.Decimal `json:"price"`
}
