package service

import (
	"context"
	"errors"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, negocioID uuid.UUID) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, negocioID, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, negocioID, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, errConflict("Ya existe un producto con ese código de barras")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	producto := model.Producto{
		NegocioID:   negocioID,
		Name:        req.Name,
		Description: &req.Description,
		Barcode:     req.Barcode,
		Price:       req.Price,
	}
	if err := s.repo.Create(ctx, &producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(&producto)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Producto no encontrado")
		}
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, negocioID uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, negocioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) Actualizar(ctx context.Context, negocioID, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Producto no encontrado")
		}
		return nil, err
	}

	if req.Barcode != producto.Barcode {
		if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing.ID != producto.ID {
			return nil, errConflict("Ya existe un producto con ese código de barras")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	producto.Name = req.Name
	producto.Description = &req.Description
	producto.Barcode = req.Barcode
	producto.Price = req.Price
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, negocioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, negocioID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("Producto no encontrado")
		}
		return err
	}
	return s.repo.Delete(ctx, negocioID, id)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		NegocioID:   p.NegocioID.String(),
		Name:        p.Name,
		Description: p.Description,
		Barcode:     p.Barcode,
		Price:       p.Price,
	}
}
