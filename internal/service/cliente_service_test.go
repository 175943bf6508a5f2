package service

import (
	"context"
	"testing"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearClienteEmailDuplicado(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	negocioID := uuid.New()

	_, err := svc.Crear(context.Background(), negocioID, dto.CrearClienteRequest{
		Name: "Carlos", Email: "carlos@test.com",
	})
	require.NoError(t, err)

	// The email is globally unique, a second tenant cannot reuse it either
	_, err = svc.Crear(context.Background(), uuid.New(), dto.CrearClienteRequest{
		Name: "Otro", Email: "carlos@test.com",
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
}

func TestActualizarClienteConservaSuEmail(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	negocioID := uuid.New()

	created, err := svc.Crear(context.Background(), negocioID, dto.CrearClienteRequest{
		Name: "Carlos", Email: "carlos@test.com",
	})
	require.NoError(t, err)

	// Updating without changing the email must not trip the conflict check
	resp, err := svc.Actualizar(context.Background(), negocioID, uuid.MustParse(created.ID), dto.ActualizarClienteRequest{
		Name: "Carlos R.", Email: "carlos@test.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos R.", resp.Name)
}

func TestObtenerClienteDeOtroNegocio(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)

	created, err := svc.Crear(context.Background(), uuid.New(), dto.CrearClienteRequest{
		Name: "Carlos", Email: "carlos@test.com",
	})
	require.NoError(t, err)

	_, err = svc.ObtenerPorID(context.Background(), uuid.New(), uuid.MustParse(created.ID))
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestEliminarCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	negocioID := uuid.New()

	created, err := svc.Crear(context.Background(), negocioID, dto.CrearClienteRequest{
		Name: "Carlos", Email: "carlos@test.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), negocioID, uuid.MustParse(created.ID)))
	assert.Empty(t, repo.clientes)
}
