package service

import (
	"context"
	"testing"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearAnuncio(t *testing.T) {
	repo := newStubAnuncioRepo()
	svc := NewAnuncioService(repo)
	usuarioID := uuid.New()

	finishedAt := "2026-12-31T23:59:00Z"
	resp, err := svc.Crear(context.Background(), usuarioID, dto.CrearAnuncioRequest{
		Message:    "Mantenimiento programado",
		FinishedAt: &finishedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, "Activo", resp.Estado)
	assert.Equal(t, usuarioID.String(), resp.UsuarioID)
	require.NotNil(t, resp.FinishedAt)
}

func TestListarFinalizaVencidos(t *testing.T) {
	repo := newStubAnuncioRepo()
	svc := NewAnuncioService(repo).(*anuncioService)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	pasado := now.Add(-time.Hour)
	futuro := now.Add(time.Hour)

	vencido := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "viejo", Estado: "Activo", FinishedAt: &pasado}
	vigente := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "nuevo", Estado: "Activo", FinishedAt: &futuro}
	sinFecha := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "permanente", Estado: "Activo"}
	repo.anuncios[vencido.ID] = vencido
	repo.anuncios[vigente.ID] = vigente
	repo.anuncios[sinFecha.ID] = sinFecha

	out, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	estados := map[string]string{}
	for _, a := range out {
		estados[a.Message] = a.Estado
	}
	assert.Equal(t, "Finalizado", estados["viejo"])
	assert.Equal(t, "Activo", estados["nuevo"])
	assert.Equal(t, "Activo", estados["permanente"])

	// The transition is persisted, not just reflected in the response
	assert.Equal(t, "Finalizado", repo.anuncios[vencido.ID].Estado)
}

func TestDisponiblesExcluyeVencidos(t *testing.T) {
	repo := newStubAnuncioRepo()
	svc := NewAnuncioService(repo).(*anuncioService)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	pasado := now.Add(-time.Minute)
	vencido := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "viejo", Estado: "Activo", FinishedAt: &pasado}
	vigente := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "nuevo", Estado: "Activo"}
	repo.anuncios[vencido.ID] = vencido
	repo.anuncios[vigente.ID] = vigente

	out, err := svc.Disponibles(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "nuevo", out[0].Message)
}

func TestFinalizarAnuncioExplicito(t *testing.T) {
	repo := newStubAnuncioRepo()
	svc := NewAnuncioService(repo)

	a := &model.Anuncio{ID: uuid.New(), UsuarioID: uuid.New(), Message: "activo", Estado: "Activo"}
	repo.anuncios[a.ID] = a

	resp, err := svc.Finalizar(context.Background(), a.ID, dto.FinalizarAnuncioRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Finalizado", resp.Estado)
	require.NotNil(t, resp.FinishedAt)
	assert.Equal(t, "Finalizado", repo.anuncios[a.ID].Estado)
}

func TestFinalizarAnuncioInexistente(t *testing.T) {
	svc := NewAnuncioService(newStubAnuncioRepo())

	_, err := svc.Finalizar(context.Background(), uuid.New(), dto.FinalizarAnuncioRequest{})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}
