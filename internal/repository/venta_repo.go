package repository

import (
	"context"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaRepository is the data access contract for sales and their line
// items. Multi-table writes (venta + detalles + deuda) run inside a single
// transaction owned by the service layer; the Tx methods receive that
// transaction handle.
type VentaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	SaveTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, negocioID, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, negocioID uuid.UUID, filter dto.VentaFilter) ([]model.Venta, error)

	FindDetalle(ctx context.Context, id uuid.UUID) (*model.DetalleVenta, error)
	CreateDetalleTx(tx *gorm.DB, d *model.DetalleVenta) error
	SaveDetalleTx(tx *gorm.DB, d *model.DetalleVenta) error
	DeleteDetallesTx(tx *gorm.DB, ventaID uuid.UUID) error

	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// UpdateSaldoTx sets payment and balance_due; used by the manual debt
	// settlement flow.
	UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, payment, balanceDue interface{}) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) SaveTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Save(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, negocioID, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles").Preload("Cliente").
		Where("id = ? AND negocio_id = ?", id, negocioID).
		First(&v).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, negocioID uuid.UUID, filter dto.VentaFilter) ([]model.Venta, error) {
	var ventas []model.Venta
	q := r.db.WithContext(ctx).Model(&model.Venta{}).Where("negocio_id = ?", negocioID)

	if filter.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM created_at) = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("EXTRACT(MONTH FROM created_at) = ?", filter.Month)
		if filter.Year == 0 {
			q = q.Where("EXTRACT(YEAR FROM created_at) = EXTRACT(YEAR FROM CURRENT_DATE)")
		}
	}

	err := q.Preload("Detalles").Preload("Cliente").
		Order("created_at DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) FindDetalle(ctx context.Context, id uuid.UUID) (*model.DetalleVenta, error) {
	var d model.DetalleVenta
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *ventaRepo) CreateDetalleTx(tx *gorm.DB, d *model.DetalleVenta) error {
	return tx.Create(d).Error
}

func (r *ventaRepo) SaveDetalleTx(tx *gorm.DB, d *model.DetalleVenta) error {
	return tx.Save(d).Error
}

func (r *ventaRepo) DeleteDetallesTx(tx *gorm.DB, ventaID uuid.UUID) error {
	return tx.Where("venta_id = ?", ventaID).Delete(&model.DetalleVenta{}).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("id = ?", id).Delete(&model.Venta{}).Error
}

func (r *ventaRepo) UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, payment, balanceDue interface{}) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment":     payment,
		"balance_due": balanceDue,
	}).Error
}
