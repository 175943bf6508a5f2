package service

import (
	"context"
	"testing"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestActualizarSeguridadCambioDeContrasena(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUsuario(t, users, "ana@test.com", "vieja1234")
	svc := NewPerfilService(users)

	nueva := "nueva12345"
	vieja := "vieja1234"
	err := svc.ActualizarSeguridad(context.Background(), u.ID, dto.ActualizarSeguridadRequest{
		NewPassword: &nueva, OldPassword: &vieja,
	})
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[u.ID].Password), []byte("nueva12345")))
}

func TestActualizarSeguridadContrasenaActualIncorrecta(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUsuario(t, users, "ana@test.com", "vieja1234")
	svc := NewPerfilService(users)

	nueva := "nueva12345"
	mala := "noescierta"
	err := svc.ActualizarSeguridad(context.Background(), u.ID, dto.ActualizarSeguridadRequest{
		NewPassword: &nueva, OldPassword: &mala,
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 401, svcErr.Status)
}

func TestActualizarSeguridadSinContrasenaActual(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUsuario(t, users, "ana@test.com", "vieja1234")
	svc := NewPerfilService(users)

	nueva := "nueva12345"
	err := svc.ActualizarSeguridad(context.Background(), u.ID, dto.ActualizarSeguridadRequest{
		NewPassword: &nueva,
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestActualizarSeguridadEmailOcupado(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUsuario(t, users, "ana@test.com", "clave1234")
	seedUsuario(t, users, "ocupado@test.com", "clave1234")
	svc := NewPerfilService(users)

	nuevoEmail := "ocupado@test.com"
	err := svc.ActualizarSeguridad(context.Background(), u.ID, dto.ActualizarSeguridadRequest{
		NewEmail: &nuevoEmail,
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
}

func TestActualizarPerfil(t *testing.T) {
	users := newStubUsuarioRepo()
	u := seedUsuario(t, users, "ana@test.com", "clave1234")
	svc := NewPerfilService(users)

	nombre := "Analía"
	resp, err := svc.Actualizar(context.Background(), u.ID, dto.ActualizarPerfilRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Analía", resp.Name)
	// Untouched fields keep their values
	assert.Equal(t, "Usuario", resp.Lastname)
}
