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
	"gorm.io/gorm"
)

type AnuncioService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAnuncioRequest) (*dto.AnuncioResponse, error)
	Listar(ctx context.Context) ([]dto.AnuncioResponse, error)
	// Disponibles returns only announcements still in estado Activo, after
	// running the same expiry sweep as Listar.
	Disponibles(ctx context.Context) ([]dto.AnuncioResponse, error)
	Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarAnuncioRequest) (*dto.AnuncioResponse, error)
}

type anuncioService struct {
	repo repository.AnuncioRepository
	now  func() time.Time
}

func NewAnuncioService(repo repository.AnuncioRepository) AnuncioService {
	return &anuncioService{repo: repo, now: time.Now}
}

func (s *anuncioService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearAnuncioRequest) (*dto.AnuncioResponse, error) {
	anuncio := model.Anuncio{
		UsuarioID:  usuarioID,
		Message:    req.Message,
		FinishedAt: parseAnuncioTime(req.FinishedAt),
		Estado:     "Activo",
	}
	if err := s.repo.Create(ctx, &anuncio); err != nil {
		return nil, err
	}
	resp := anuncioToResponse(&anuncio)
	return &resp, nil
}

func (s *anuncioService) Listar(ctx context.Context) ([]dto.AnuncioResponse, error) {
	anuncios, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.sweepVencidos(ctx, anuncios)
	out := make([]dto.AnuncioResponse, 0, len(anuncios))
	for i := range anuncios {
		out = append(out, anuncioToResponse(&anuncios[i]))
	}
	return out, nil
}

func (s *anuncioService) Disponibles(ctx context.Context) ([]dto.AnuncioResponse, error) {
	anuncios, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	s.sweepVencidos(ctx, anuncios)
	out := make([]dto.AnuncioResponse, 0, len(anuncios))
	for i := range anuncios {
		if anuncios[i].Estado == "Activo" {
			out = append(out, anuncioToResponse(&anuncios[i]))
		}
	}
	return out, nil
}

func (s *anuncioService) Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarAnuncioRequest) (*dto.AnuncioResponse, error) {
	anuncio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Anuncio no encontrado")
		}
		return nil, err
	}

	finishedAt := parseAnuncioTime(req.FinishedAt)
	if finishedAt == nil {
		t := s.now()
		finishedAt = &t
	}
	if err := s.repo.Finalizar(ctx, anuncio.ID, finishedAt); err != nil {
		return nil, err
	}

	anuncio.Estado = "Finalizado"
	anuncio.FinishedAt = finishedAt
	resp := anuncioToResponse(anuncio)
	return &resp, nil
}

// sweepVencidos flips Activo announcements whose finish time has passed.
// Expiry is evaluated on read; a failed persist only logs, the in-memory
// state already reflects the transition for this response.
func (s *anuncioService) sweepVencidos(ctx context.Context, anuncios []model.Anuncio) {
	now := s.now()
	for i := range anuncios {
		a := &anuncios[i]
		if a.Estado != "Activo" || a.FinishedAt == nil || a.FinishedAt.After(now) {
			continue
		}
		a.Estado = "Finalizado"
		if err := s.repo.Finalizar(ctx, a.ID, a.FinishedAt); err != nil {
			log.Error().Err(err).Str("anuncio_id", a.ID.String()).
				Msg("no se pudo persistir la finalización del anuncio")
		}
	}
}

func parseAnuncioTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t
	}
	return nil
}

func anuncioToResponse(a *model.Anuncio) dto.AnuncioResponse {
	resp := dto.AnuncioResponse{
		ID:        a.ID.String(),
		UsuarioID: a.UsuarioID.String(),
		Message:   a.Message,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		Estado:    a.Estado,
	}
	if a.FinishedAt != nil {
		f := a.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &f
	}
	if a.Usuario != nil {
		resp.UsuarioName = a.Usuario.Name
		resp.UsuarioLastname = a.Usuario.Lastname
	}
	return resp
}
