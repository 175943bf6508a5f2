package repository

import (
	"context"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeudaRepository interface {
	CreateTx(tx *gorm.DB, d *model.Deuda) error
	SaveTx(tx *gorm.DB, d *model.Deuda) error
	// FindByClienteVentaTx resolves the natural key used by the sale
	// reconciler's upsert. Runs inside the caller's transaction so the
	// find-then-write pair cannot race with a concurrent update.
	FindByClienteVentaTx(tx *gorm.DB, clienteID, ventaID uuid.UUID) (*model.Deuda, error)
	DeleteByClienteVentaTx(tx *gorm.DB, clienteID, ventaID uuid.UUID) error
	DeleteByVentaTx(tx *gorm.DB, ventaID uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Deuda, error)
	List(ctx context.Context, negocioID uuid.UUID, filter dto.DeudaFilter) ([]model.Deuda, error)
}

type deudaRepo struct{ db *gorm.DB }

func NewDeudaRepository(db *gorm.DB) DeudaRepository { return &deudaRepo{db: db} }

func (r *deudaRepo) CreateTx(tx *gorm.DB, d *model.Deuda) error {
	return tx.Create(d).Error
}

func (r *deudaRepo) SaveTx(tx *gorm.DB, d *model.Deuda) error {
	return tx.Save(d).Error
}

func (r *deudaRepo) FindByClienteVentaTx(tx *gorm.DB, clienteID, ventaID uuid.UUID) (*model.Deuda, error) {
	var d model.Deuda
	err := tx.Where("cliente_id = ? AND venta_id = ?", clienteID, ventaID).First(&d).Error
	return &d, err
}

func (r *deudaRepo) DeleteByClienteVentaTx(tx *gorm.DB, clienteID, ventaID uuid.UUID) error {
	return tx.Where("cliente_id = ? AND venta_id = ?", clienteID, ventaID).Delete(&model.Deuda{}).Error
}

func (r *deudaRepo) DeleteByVentaTx(tx *gorm.DB, ventaID uuid.UUID) error {
	return tx.Where("venta_id = ?", ventaID).Delete(&model.Deuda{}).Error
}

func (r *deudaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Where("id = ?", id).Delete(&model.Deuda{}).Error
}

func (r *deudaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Deuda, error) {
	var d model.Deuda
	err := r.db.WithContext(ctx).
		Preload("Venta").Preload("Cliente").
		First(&d, id).Error
	return &d, err
}

// List returns the tenant's debts, joined through ventas for the scope
// check, with cliente and venta preloaded for the response shape.
func (r *deudaRepo) List(ctx context.Context, negocioID uuid.UUID, filter dto.DeudaFilter) ([]model.Deuda, error) {
	var deudas []model.Deuda
	q := r.db.WithContext(ctx).Model(&model.Deuda{}).
		Joins("JOIN ventas ON ventas.id = deudas.venta_id").
		Where("ventas.negocio_id = ?", negocioID)

	if filter.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM ventas.created_at) = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("EXTRACT(MONTH FROM ventas.created_at) = ?", filter.Month)
		if filter.Year == 0 {
			q = q.Where("EXTRACT(YEAR FROM ventas.created_at) = EXTRACT(YEAR FROM CURRENT_DATE)")
		}
	}

	err := q.Preload("Venta").Preload("Cliente").
		Order("deudas.created_at DESC").
		Find(&deudas).Error
	return deudas, err
}
