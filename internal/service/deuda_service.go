package service

import (
	"context"
	"errors"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DeudaService interface {
	Listar(ctx context.Context, negocioID uuid.UUID, filter dto.DeudaFilter) ([]dto.DeudaResponse, error)
	// Saldar settles a debt in full: the sale's payment becomes its total,
	// its balance drops to zero and the deuda row is removed.
	Saldar(ctx context.Context, negocioID, deudaID uuid.UUID) error
}

type deudaService struct {
	repo      repository.DeudaRepository
	ventaRepo repository.VentaRepository
}

func NewDeudaService(repo repository.DeudaRepository, ventaRepo repository.VentaRepository) DeudaService {
	return &deudaService{repo: repo, ventaRepo: ventaRepo}
}

func (s *deudaService) Listar(ctx context.Context, negocioID uuid.UUID, filter dto.DeudaFilter) ([]dto.DeudaResponse, error) {
	deudas, err := s.repo.List(ctx, negocioID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeudaResponse, 0, len(deudas))
	for i := range deudas {
		out = append(out, deudaToResponse(&deudas[i]))
	}
	return out, nil
}

func (s *deudaService) Saldar(ctx context.Context, negocioID, deudaID uuid.UUID) error {
	deuda, err := s.repo.FindByID(ctx, deudaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("Deuda no encontrada")
		}
		return err
	}
	if deuda.Venta == nil || deuda.Venta.NegocioID != negocioID {
		return errForbidden("No tiene permiso para modificar esta deuda")
	}

	venta := deuda.Venta
	return runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.ventaRepo.UpdateSaldoTx(tx, venta.ID, venta.Total, decimal.Zero); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, deuda.ID)
	})
}

func deudaToResponse(d *model.Deuda) dto.DeudaResponse {
	resp := dto.DeudaResponse{
		ID:        d.ID.String(),
		ClienteID: d.ClienteID.String(),
		VentaID:   d.VentaID.String(),
		Amount:    d.Amount,
		Status:    d.Status,
	}
	if d.Cliente != nil {
		resp.ClienteName = d.Cliente.Name
	}
	if d.Venta != nil {
		resp.VentaDate = d.Venta.CreatedAt.Format(time.RFC3339)
	}
	if d.DueDate != nil {
		due := d.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}
