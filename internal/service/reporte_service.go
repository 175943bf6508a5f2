package service

import (
	"context"
	"errors"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	topProductosLimit = 10
	mesesGrafico      = 3
)

type ReporteService interface {
	Overview(ctx context.Context, usuarioID, negocioID uuid.UUID) (*dto.OverviewResponse, error)
	NetRevenue(ctx context.Context, negocioID uuid.UUID) (*dto.NetRevenueResponse, error)
	PorProducto(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaPorProducto, error)
	PorMetodoPago(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaPorMetodoPago, error)
	// UltimasMensuales returns one bucket per month for the trailing window,
	// zero-filled so the chart never has gaps.
	UltimasMensuales(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaMensual, error)
	PorNegocio(ctx context.Context) ([]dto.VentaPorNegocio, error)

	AccesosDirectos(ctx context.Context, usuarioID uuid.UUID) (*string, error)
	GuardarAccesosDirectos(ctx context.Context, usuarioID uuid.UUID, req dto.AccesosDirectosRequest) error
}

type reporteService struct {
	repo         repository.ReporteRepository
	usuarioRepo  repository.UsuarioRepository
	productoRepo repository.ProductoRepository
	now          func() time.Time
}

func NewReporteService(
	repo repository.ReporteRepository,
	usuarioRepo repository.UsuarioRepository,
	productoRepo repository.ProductoRepository,
) ReporteService {
	return &reporteService{
		repo:         repo,
		usuarioRepo:  usuarioRepo,
		productoRepo: productoRepo,
		now:          time.Now,
	}
}

// mesActual returns the [first instant, last instant] pair of the current
// month.
func (s *reporteService) mesActual() (time.Time, time.Time) {
	now := s.now()
	desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	hasta := desde.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return desde, hasta
}

func (s *reporteService) Overview(ctx context.Context, usuarioID, negocioID uuid.UUID) (*dto.OverviewResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("No se encontró un usuario")
		}
		return nil, err
	}

	desde, hasta := s.mesActual()
	resumen, err := s.repo.ResumenMensual(ctx, negocioID, desde, hasta)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewResponse{
		UserName:        usuario.Name,
		TotalAmount:     resumen.TotalPayment,
		TotalBalanceDue: resumen.TotalBalanceDue,
		QuantityOfSales: resumen.Count,
	}, nil
}

func (s *reporteService) NetRevenue(ctx context.Context, negocioID uuid.UUID) (*dto.NetRevenueResponse, error) {
	desde, hasta := s.mesActual()

	resumen, err := s.repo.ResumenMensual(ctx, negocioID, desde, hasta)
	if err != nil {
		return nil, err
	}
	deuda, err := s.repo.DeudaActiva(ctx, negocioID, desde, hasta)
	if err != nil {
		return nil, err
	}

	return &dto.NetRevenueResponse{
		TotalSales:   resumen.TotalPayment,
		TotalDebt:    deuda,
		ActualAmount: resumen.TotalPayment.Sub(deuda),
	}, nil
}

func (s *reporteService) PorProducto(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaPorProducto, error) {
	rows, err := s.repo.VentasPorProducto(ctx, negocioID, topProductosLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaPorProducto, 0, len(rows))
	for _, row := range rows {
		name := "Producto eliminado"
		if producto, err := s.productoRepo.FindByID(ctx, negocioID, row.ProductoID); err == nil {
			name = producto.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("producto_id", row.ProductoID.String()).
				Msg("no se pudo resolver el nombre del producto")
		}
		out = append(out, dto.VentaPorProducto{
			ProductID:     row.ProductoID.String(),
			ProductName:   name,
			TotalSales:    row.TotalSales,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return out, nil
}

func (s *reporteService) PorMetodoPago(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaPorMetodoPago, error) {
	rows, err := s.repo.VentasPorMetodoPago(ctx, negocioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaPorMetodoPago, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.VentaPorMetodoPago{
			PaymentMethod: row.PaymentMethod,
			TotalSales:    row.TotalSales,
		})
	}
	return out, nil
}

func (s *reporteService) UltimasMensuales(ctx context.Context, negocioID uuid.UUID) ([]dto.VentaMensual, error) {
	rows, err := s.repo.VentasMensuales(ctx, negocioID, mesesGrafico)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]repository.MesRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month.Format("2006-01")] = row
	}

	// Oldest first, current month last.
	now := s.now()
	out := make([]dto.VentaMensual, 0, mesesGrafico)
	for i := mesesGrafico - 1; i >= 0; i-- {
		key := now.AddDate(0, -i, 0).Format("2006-01")
		bucket := dto.VentaMensual{Month: key}
		if row, ok := byMonth[key]; ok {
			bucket.TotalSales = row.TotalSales
		}
		out = append(out, bucket)
	}
	return out, nil
}

func (s *reporteService) PorNegocio(ctx context.Context) ([]dto.VentaPorNegocio, error) {
	rows, err := s.repo.VentasPorNegocio(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaPorNegocio, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.VentaPorNegocio{
			BusinessID: row.NegocioID.String(),
			TotalSales: row.TotalSales,
		})
	}
	return out, nil
}

func (s *reporteService) AccesosDirectos(ctx context.Context, usuarioID uuid.UUID) (*string, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("No se encontró un usuario")
		}
		return nil, err
	}
	return usuario.AccesosDirectos, nil
}

func (s *reporteService) GuardarAccesosDirectos(ctx context.Context, usuarioID uuid.UUID, req dto.AccesosDirectosRequest) error {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("No se encontró un usuario")
		}
		return err
	}
	usuario.AccesosDirectos = &req.AccesosDirectos
	return s.usuarioRepo.Update(ctx, usuario)
}
