package repository

import (
	"context"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenMensual aggregates a month of sales for the overview card.
type ResumenMensual struct {
	TotalPayment    decimal.Decimal
	TotalBalanceDue decimal.Decimal
	Count           int64
}

// PorProductoRow is one group of the sales-by-product aggregation.
type PorProductoRow struct {
	ProductoID    uuid.UUID
	TotalSales    decimal.Decimal
	TotalQuantity int64
}

// PorMetodoPagoRow is one group of the sales-by-payment-method aggregation.
type PorMetodoPagoRow struct {
	PaymentMethod *string
	TotalSales    decimal.Decimal
}

// MesRow is one month bucket of the monthly revenue aggregation.
type MesRow struct {
	Month      time.Time
	TotalSales decimal.Decimal
}

// PorNegocioRow is one group of the sales-per-business aggregation.
type PorNegocioRow struct {
	NegocioID  uuid.UUID
	TotalSales decimal.Decimal
}

// ReporteRepository holds the read-only aggregation queries backing the
// dashboard. Everything here is a sum/count/group-by over ventas, detalles
// and deudas; no state is written.
type ReporteRepository interface {
	ResumenMensual(ctx context.Context, negocioID uuid.UUID, desde, hasta time.Time) (*ResumenMensual, error)
	DeudaActiva(ctx context.Context, negocioID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error)
	VentasPorProducto(ctx context.Context, negocioID uuid.UUID, limit int) ([]PorProductoRow, error)
	VentasPorMetodoPago(ctx context.Context, negocioID uuid.UUID) ([]PorMetodoPagoRow, error)
	VentasMensuales(ctx context.Context, negocioID uuid.UUID, meses int) ([]MesRow, error)
	VentasPorNegocio(ctx context.Context) ([]PorNegocioRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenMensual(ctx context.Context, negocioID uuid.UUID, desde, hasta time.Time) (*ResumenMensual, error) {
	var row struct {
		TotalPayment    decimal.Decimal
		TotalBalanceDue decimal.Decimal
		Count           int64
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(payment), 0) AS total_payment, COALESCE(SUM(balance_due), 0) AS total_balance_due, COUNT(id) AS count").
		Where("negocio_id = ? AND created_at >= ? AND created_at <= ?", negocioID, desde, hasta).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ResumenMensual{
		TotalPayment:    row.TotalPayment,
		TotalBalanceDue: row.TotalBalanceDue,
		Count:           row.Count,
	}, nil
}

func (r *reporteRepo) DeudaActiva(ctx context.Context, negocioID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Deuda{}).
		Select("COALESCE(SUM(deudas.amount), 0) AS total").
		Joins("JOIN clientes ON clientes.id = deudas.cliente_id").
		Where("clientes.negocio_id = ? AND deudas.status = ? AND deudas.updated_at >= ? AND deudas.updated_at <= ?",
			negocioID, "Activo", desde, hasta).
		Scan(&row).Error
	return row.Total, err
}

func (r *reporteRepo) VentasPorProducto(ctx context.Context, negocioID uuid.UUID, limit int) ([]PorProductoRow, error) {
	var rows []PorProductoRow
	err := r.db.WithContext(ctx).Model(&model.DetalleVenta{}).
		Select("detalle_ventas.producto_id AS producto_id, COALESCE(SUM(detalle_ventas.price), 0) AS total_sales, COALESCE(SUM(detalle_ventas.quantity), 0) AS total_quantity").
		Joins("JOIN ventas ON ventas.id = detalle_ventas.venta_id").
		Where("ventas.negocio_id = ?", negocioID).
		Group("detalle_ventas.producto_id").
		Order("total_sales DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) VentasPorMetodoPago(ctx context.Context, negocioID uuid.UUID) ([]PorMetodoPagoRow, error) {
	var rows []PorMetodoPagoRow
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("payment_method, COALESCE(SUM(payment), 0) AS total_sales").
		Where("negocio_id = ?", negocioID).
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) VentasMensuales(ctx context.Context, negocioID uuid.UUID, meses int) ([]MesRow, error) {
	var rows []MesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE_TRUNC('month', created_at) AS month,
		       COALESCE(SUM(payment), 0)       AS total_sales
		FROM ventas
		WHERE negocio_id = ?
		  AND created_at >= CURRENT_DATE - (? * INTERVAL '1 month')
		GROUP BY month
		ORDER BY month ASC`, negocioID, meses).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) VentasPorNegocio(ctx context.Context) ([]PorNegocioRow, error) {
	var rows []PorNegocioRow
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("negocio_id, COALESCE(SUM(total), 0) AS total_sales").
		Group("negocio_id").
		Scan(&rows).Error
	return rows, err
}
