package service

import (
	"context"
	"errors"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, negocioID uuid.UUID) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, negocioID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, negocioID, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, negocioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errConflict("Ya existe un cliente con ese correo electrónico")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cliente := model.Cliente{
		NegocioID: negocioID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(&cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, negocioID, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Cliente no encontrado")
		}
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, negocioID uuid.UUID) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, negocioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, negocioID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, negocioID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Cliente no encontrado")
		}
		return nil, err
	}

	if req.Email != cliente.Email {
		if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing.ID != cliente.ID {
			return nil, errConflict("Ya existe un cliente con ese correo electrónico")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	cliente.Name = req.Name
	cliente.Email = req.Email
	cliente.Phone = req.Phone
	cliente.Address = req.Address
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, negocioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, negocioID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("Cliente no encontrado")
		}
		return err
	}
	return s.repo.Delete(ctx, negocioID, id)
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		NegocioID: c.NegocioID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
