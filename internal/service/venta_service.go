package service

import (
	"context"
	"errors"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Actualizar(ctx context.Context, negocioID, ventaID uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, negocioID uuid.UUID, filter dto.VentaFilter) ([]dto.VentaResponse, error)
	Eliminar(ctx context.Context, negocioID, id uuid.UUID) error
}

type ventaService struct {
	repo         repository.VentaRepository
	deudaRepo    repository.DeudaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	deudaRepo repository.DeudaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
) VentaService {
	return &ventaService{
		repo:         repo,
		deudaRepo:    deudaRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// effectiveDebt derives the outstanding balance of a sale. Off credit it is
// always zero regardless of payment vs total; on credit it is the declared
// amount clamped at zero — balance_due never goes negative.
func effectiveDebt(isOnCredit bool, deudaAmount *decimal.Decimal) decimal.Decimal {
	if !isOnCredit || deudaAmount == nil {
		return decimal.Zero
	}
	if deudaAmount.IsNegative() {
		return decimal.Zero
	}
	return *deudaAmount
}

func saleStatus(isOnCredit bool) string {
	if isOnCredit {
		return "Pagado Parcialmente"
	}
	return "Pagado"
}

func parseDueDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// Crear registers a sale with its line items and, when sold on credit, the
// matching deuda row. The three tables are written in one transaction so a
// credit sale can never exist without its debt.
func (s *ventaService) Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errBadRequest("ID del cliente no válido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, negocioID, cid); err != nil {
			return nil, errNotFound("Cliente no encontrado")
		}
		clienteID = &cid
	}
	if req.IsOnCredit && clienteID == nil {
		return nil, errBadRequest("Cliente es requerido para ventas a crédito")
	}

	// Resolve every product up front: validates tenant ownership and gives
	// the name snapshot for the detalle rows.
	detalles, err := s.resolveDetalles(ctx, negocioID, req.Detalles)
	if err != nil {
		return nil, err
	}

	debt := effectiveDebt(req.IsOnCredit, req.DeudaAmount)

	venta := model.Venta{
		NegocioID:     negocioID,
		ClienteID:     clienteID,
		Payment:       req.Payment,
		Total:         req.Total,
		BalanceDue:    debt,
		Status:        saleStatus(req.IsOnCredit),
		PaymentMethod: req.PaymentMethod,
		Detalles:      detalles,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &venta); err != nil {
			return err
		}
		if req.IsOnCredit && debt.IsPositive() {
			deuda := model.Deuda{
				ClienteID: *clienteID,
				VentaID:   venta.ID,
				Amount:    debt,
				DueDate:   parseDueDate(req.DueDate),
				Status:    "Activo",
			}
			if err := s.deudaRepo.CreateTx(tx, &deuda); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return ventaToResponse(&venta), nil
}

// Actualizar rewrites the sale's payment state, reconciles its line items by
// id, and syncs the deuda row from the new credit state — all in one
// transaction.
func (s *ventaService) Actualizar(ctx context.Context, negocioID, ventaID uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errBadRequest("ID del cliente no válido")
	}

	venta, err := s.repo.FindByID(ctx, negocioID, ventaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Venta no encontrada")
		}
		return nil, err
	}

	debt := effectiveDebt(req.IsOnCredit, req.DeudaAmount)

	venta.Payment = req.Payment
	venta.PaymentMethod = req.PaymentMethod
	venta.ClienteID = &clienteID
	venta.Total = req.Total
	venta.BalanceDue = debt
	venta.Status = saleStatus(req.IsOnCredit)

	// Detalles already attached to the loaded venta, indexed for the
	// update-in-place pass.
	existing := make(map[uuid.UUID]*model.DetalleVenta, len(venta.Detalles))
	for i := range venta.Detalles {
		existing[venta.Detalles[i].ID] = &venta.Detalles[i]
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta.Detalles = nil // written row by row below, not via Save
		if err := s.repo.SaveTx(ctx, tx, venta); err != nil {
			return err
		}

		for _, d := range req.Detalles {
			productoID, err := uuid.Parse(d.ProductoID)
			if err != nil {
				return errBadRequest("ID del producto no válido")
			}
			if d.ID != nil {
				detalleID, err := uuid.Parse(*d.ID)
				if err != nil {
					return errBadRequest("ID del detalle no válido")
				}
				row, ok := existing[detalleID]
				if !ok {
					// An id that belongs to no row of this venta is a stale
					// or foreign payload; skip it rather than fabricating a
					// row under the caller's id.
					log.Warn().Str("detalle_id", detalleID.String()).
						Str("venta_id", venta.ID.String()).
						Msg("detalle id does not belong to venta, skipping")
					continue
				}
				row.ProductoID = productoID
				row.Quantity = d.Quantity
				row.Price = d.Price
				row.IvaPercentage = orZero(d.IvaPercentage)
				row.Discount = orZero(d.Discount)
				if err := s.repo.SaveDetalleTx(tx, row); err != nil {
					return err
				}
			} else {
				nuevo := &model.DetalleVenta{
					VentaID:       venta.ID,
					ProductoID:    productoID,
					ProductName:   d.ProductName,
					Quantity:      d.Quantity,
					Price:         d.Price,
					IvaPercentage: orZero(d.IvaPercentage),
					Discount:      orZero(d.Discount),
					SaleDate:      time.Now(),
				}
				if err := s.repo.CreateDetalleTx(tx, nuevo); err != nil {
					return err
				}
			}
		}

		return s.syncDeuda(tx, clienteID, venta.ID, req.IsOnCredit, debt, parseDueDate(req.DueDate))
	})
	if txErr != nil {
		return nil, txErr
	}

	refreshed, err := s.repo.FindByID(ctx, negocioID, venta.ID)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(refreshed), nil
}

// syncDeuda keeps the deudas table consistent with the sale's credit state:
// on credit with a positive amount it upserts the row for the (cliente,
// venta) pair, otherwise it deletes whatever exists for the pair — the sale
// is considered settled.
func (s *ventaService) syncDeuda(tx *gorm.DB, clienteID, ventaID uuid.UUID, isOnCredit bool, amount decimal.Decimal, dueDate *time.Time) error {
	if isOnCredit && amount.IsPositive() {
		deuda, err := s.deudaRepo.FindByClienteVentaTx(tx, clienteID, ventaID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return s.deudaRepo.CreateTx(tx, &model.Deuda{
				ClienteID: clienteID,
				VentaID:   ventaID,
				Amount:    amount,
				DueDate:   dueDate,
				Status:    "Activo",
			})
		}
		deuda.Amount = amount
		deuda.DueDate = dueDate
		deuda.Status = "Activo"
		return s.deudaRepo.SaveTx(tx, deuda)
	}
	return s.deudaRepo.DeleteByClienteVentaTx(tx, clienteID, ventaID)
}

func (s *ventaService) ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Venta no encontrada")
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, negocioID uuid.UUID, filter dto.VentaFilter) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.List(ctx, negocioID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

// Eliminar removes the sale and cascades over its children first (deudas,
// then detalles) so referential constraints hold at every step.
func (s *ventaService) Eliminar(ctx context.Context, negocioID, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("Venta no encontrada")
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.deudaRepo.DeleteByVentaTx(tx, venta.ID); err != nil {
			return err
		}
		if err := s.repo.DeleteDetallesTx(tx, venta.ID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, venta.ID)
	})
}

// resolveDetalles validates each line's product against the tenant's catalog
// and builds the model rows, snapshotting the product name at sale time.
func (s *ventaService) resolveDetalles(ctx context.Context, negocioID uuid.UUID, items []dto.DetalleVentaRequest) ([]model.DetalleVenta, error) {
	detalles := make([]model.DetalleVenta, 0, len(items))
	now := time.Now()
	for _, d := range items {
		productoID, err := uuid.Parse(d.ProductoID)
		if err != nil {
			return nil, errBadRequest("ID del producto no válido")
		}
		producto, err := s.productoRepo.FindByID(ctx, negocioID, productoID)
		if err != nil {
			return nil, errNotFound("Producto no encontrado")
		}
		name := d.ProductName
		if name == "" {
			name = producto.Name
		}
		detalles = append(detalles, model.DetalleVenta{
			ProductoID:    productoID,
			ProductName:   name,
			Quantity:      d.Quantity,
			Price:         d.Price,
			IvaPercentage: orZero(d.IvaPercentage),
			Discount:      orZero(d.Discount),
			SaleDate:      now,
		})
	}
	return detalles, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.DetalleVentaResponse{
			ID:            d.ID.String(),
			ProductoID:    d.ProductoID.String(),
			ProductName:   d.ProductName,
			Quantity:      d.Quantity,
			Price:         d.Price,
			IvaPercentage: d.IvaPercentage,
			Discount:      d.Discount,
			SaleDate:      d.SaleDate.Format(time.RFC3339),
		})
	}
	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		NegocioID:     v.NegocioID.String(),
		Payment:       v.Payment,
		Total:         v.Total,
		BalanceDue:    v.BalanceDue,
		Status:        v.Status,
		PaymentMethod: v.PaymentMethod,
		Detalles:      detalles,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	if v.Cliente != nil {
		resp.ClienteName = &v.Cliente.Name
	}
	return resp
}
