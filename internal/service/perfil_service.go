package service

import (
	"context"
	"errors"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

type PerfilService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error)
	// ActualizarSeguridad changes email and/or password. A password change
	// requires the current password; the email alone does not.
	ActualizarSeguridad(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarSeguridadRequest) error
}

type perfilService struct {
	repo repository.UsuarioRepository
}

func NewPerfilService(repo repository.UsuarioRepository) PerfilService {
	return &perfilService{repo: repo}
}

func (s *perfilService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("No se encontró un usuario")
		}
		return nil, err
	}
	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *perfilService) Actualizar(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("No se encontró un usuario")
		}
		return nil, err
	}

	if req.Name != nil {
		usuario.Name = *req.Name
	}
	if req.Lastname != nil {
		usuario.Lastname = *req.Lastname
	}
	if req.ProfileImage != nil {
		usuario.ProfileImage = req.ProfileImage
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *perfilService) ActualizarSeguridad(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarSeguridadRequest) error {
	if req.NewEmail == nil && req.NewPassword == nil {
		return errBadRequest("No hay cambios para aplicar")
	}

	usuario, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("No se encontró un usuario")
		}
		return err
	}

	if req.NewPassword != nil {
		if req.OldPassword == nil {
			return errBadRequest("La contraseña actual es requerida")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(*req.OldPassword)); err != nil {
			return errUnauthorized("Contraseña inválida")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcryptCost)
		if err != nil {
			return err
		}
		usuario.Password = string(hash)
	}

	if req.NewEmail != nil && *req.NewEmail != usuario.Email {
		if existing, err := s.repo.FindByEmail(ctx, *req.NewEmail); err == nil && existing.ID != usuario.ID {
			return errConflict("Ya existe un usuario con ese correo electrónico")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		usuario.Email = *req.NewEmail
	}

	return s.repo.Update(ctx, usuario)
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Lastname:     u.Lastname,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
	if u.NegocioID != nil {
		id := u.NegocioID.String()
		resp.NegocioID = &id
	}
	return resp
}
