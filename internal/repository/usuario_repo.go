package repository

import (
	"context"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository defines the data access contract for accounts. Services
// depend on this interface, not on the concrete GORM implementation, which
// keeps them unit-testable with in-memory stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// LoginAttemptRepository records and queries the append-only attempt log.
type LoginAttemptRepository interface {
	Create(ctx context.Context, a *model.LoginAttempt) error
	// CountRecentFailures counts failed attempts for the user with
	// attempted_at >= since.
	CountRecentFailures(ctx context.Context, usuarioID uuid.UUID, since time.Time) (int64, error)
}

type loginAttemptRepo struct{ db *gorm.DB }

func NewLoginAttemptRepository(db *gorm.DB) LoginAttemptRepository {
	return &loginAttemptRepo{db: db}
}

func (r *loginAttemptRepo) Create(ctx context.Context, a *model.LoginAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *loginAttemptRepo) CountRecentFailures(ctx context.Context, usuarioID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LoginAttempt{}).
		Where("usuario_id = ? AND success = false AND attempted_at >= ?", usuarioID, since).
		Count(&count).Error
	return count, err
}
