package repository

import (
	"context"

	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NegocioRepository interface {
	Create(ctx context.Context, n *model.Negocio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Negocio, error)
}

type negocioRepo struct{ db *gorm.DB }

func NewNegocioRepository(db *gorm.DB) NegocioRepository { return &negocioRepo{db: db} }

func (r *negocioRepo) Create(ctx context.Context, n *model.Negocio) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *negocioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Negocio, error) {
	var n model.Negocio
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}
