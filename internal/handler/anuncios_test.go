package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAnuncioRepo struct {
	anuncios map[uuid.UUID]*model.Anuncio
}

func newStubAnuncioRepo() *stubAnuncioRepo {
	return &stubAnuncioRepo{anuncios: make(map[uuid.UUID]*model.Anuncio)}
}

func (r *stubAnuncioRepo) Create(_ context.Context, a *model.Anuncio) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.anuncios[a.ID] = a
	return nil
}

func (r *stubAnuncioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Anuncio, error) {
	a, ok := r.anuncios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAnuncioRepo) ListAll(_ context.Context) ([]model.Anuncio, error) {
	var out []model.Anuncio
	for _, a := range r.anuncios {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAnuncioRepo) ListActivos(_ context.Context) ([]model.Anuncio, error) {
	var out []model.Anuncio
	for _, a := range r.anuncios {
		if a.Estado == "Activo" {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAnuncioRepo) Finalizar(_ context.Context, id uuid.UUID, finishedAt *time.Time) error {
	a, ok := r.anuncios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Estado = "Finalizado"
	if finishedAt != nil {
		a.FinishedAt = finishedAt
	}
	return nil
}

func (r *stubAnuncioRepo) Update(_ context.Context, a *model.Anuncio) error {
	r.anuncios[a.ID] = a
	return nil
}

// anuncioRouter mounts the routes the way the real router does: reads are
// anonymous, writes sit behind the JWT middleware.
func anuncioRouter(repo *stubAnuncioRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnunciosHandler(service.NewAnuncioService(repo))

	anuncio := r.Group("/v1/anuncio")
	anuncio.GET("", h.Listar)
	anuncio.GET("/disponibles", h.Disponibles)
	anuncio.POST("", middleware.JWTAuth(testSecret), h.Crear)
	anuncio.PUT("/:id/finalizar", middleware.JWTAuth(testSecret), h.Finalizar)
	return r
}

func seedAnuncio(repo *stubAnuncioRepo, message, estado string) *model.Anuncio {
	a := &model.Anuncio{
		ID:        uuid.New(),
		UsuarioID: uuid.New(),
		Message:   message,
		Estado:    estado,
		CreatedAt: time.Now(),
	}
	repo.anuncios[a.ID] = a
	return a
}

func TestAnuncios_ListarSinToken(t *testing.T) {
	repo := newStubAnuncioRepo()
	seedAnuncio(repo, "Cierre por inventario", "Activo")
	seedAnuncio(repo, "Promo finalizada", "Finalizado")
	r := anuncioRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/anuncio", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []dto.AnuncioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestAnuncios_DisponiblesSinToken(t *testing.T) {
	repo := newStubAnuncioRepo()
	seedAnuncio(repo, "Cierre por inventario", "Activo")
	seedAnuncio(repo, "Promo finalizada", "Finalizado")
	r := anuncioRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/anuncio/disponibles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []dto.AnuncioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Cierre por inventario", resp[0].Message)
}

func TestAnuncios_CrearRequiereToken(t *testing.T) {
	r := anuncioRouter(newStubAnuncioRepo())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/anuncio", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnuncios_CrearConToken(t *testing.T) {
	repo := newStubAnuncioRepo()
	r := anuncioRouter(repo)
	usuarioID := uuid.New()
	tok := signToken(t, usuarioID.String(), "ana@test.com", time.Hour)

	body := `{"message":"Nueva sucursal"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/anuncio", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.AnuncioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Activo", resp.Estado)
	assert.Equal(t, usuarioID.String(), resp.UsuarioID)
}
