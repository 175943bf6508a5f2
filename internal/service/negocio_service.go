package service

import (
	"context"
	"errors"

	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NegocioService interface {
	IvaPercentage(ctx context.Context, negocioID uuid.UUID) (decimal.Decimal, error)
}

type negocioService struct {
	repo repository.NegocioRepository
}

func NewNegocioService(repo repository.NegocioRepository) NegocioService {
	return &negocioService{repo: repo}
}

func (s *negocioService) IvaPercentage(ctx context.Context, negocioID uuid.UUID) (decimal.Decimal, error) {
	negocio, err := s.repo.FindByID(ctx, negocioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, errNotFound("Negocio no encontrado")
		}
		return decimal.Zero, err
	}
	return negocio.IvaPercentage, nil
}
