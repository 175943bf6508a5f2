package repository

import (
	"context"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnuncioRepository interface {
	Create(ctx context.Context, a *model.Anuncio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Anuncio, error)
	// ListAll returns every announcement with its author preloaded.
	ListAll(ctx context.Context) ([]model.Anuncio, error)
	ListActivos(ctx context.Context) ([]model.Anuncio, error)
	// Finalizar persists the Activo → Finalizado transition.
	Finalizar(ctx context.Context, id uuid.UUID, finishedAt *time.Time) error
	Update(ctx context.Context, a *model.Anuncio) error
}

type anuncioRepo struct{ db *gorm.DB }

func NewAnuncioRepository(db *gorm.DB) AnuncioRepository { return &anuncioRepo{db: db} }

func (r *anuncioRepo) Create(ctx context.Context, a *model.Anuncio) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *anuncioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Anuncio, error) {
	var a model.Anuncio
	err := r.db.WithContext(ctx).Preload("Usuario").First(&a, id).Error
	return &a, err
}

func (r *anuncioRepo) ListAll(ctx context.Context) ([]model.Anuncio, error) {
	var anuncios []model.Anuncio
	err := r.db.WithContext(ctx).Preload("Usuario").
		Order("created_at DESC").
		Find(&anuncios).Error
	return anuncios, err
}

func (r *anuncioRepo) ListActivos(ctx context.Context) ([]model.Anuncio, error) {
	var anuncios []model.Anuncio
	err := r.db.WithContext(ctx).
		Where("estado = ?", "Activo").
		Order("created_at DESC").
		Find(&anuncios).Error
	return anuncios, err
}

func (r *anuncioRepo) Finalizar(ctx context.Context, id uuid.UUID, finishedAt *time.Time) error {
	updates := map[string]interface{}{"estado": "Finalizado"}
	if finishedAt != nil {
		updates["finished_at"] = finishedAt
	}
	return r.db.WithContext(ctx).Model(&model.Anuncio{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *anuncioRepo) Update(ctx context.Context, a *model.Anuncio) error {
	return r.db.WithContext(ctx).Save(a).Error
}
