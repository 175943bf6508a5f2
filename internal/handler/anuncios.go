package handler

import (
	"net/http"

	"github.com/martinmorag/manejo-de-empresas/internal/apierror"
	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnunciosHandler struct{ svc service.AnuncioService }

func NewAnunciosHandler(svc service.AnuncioService) *AnunciosHandler {
	return &AnunciosHandler{svc: svc}
}

// Crear godoc
// @Summary Publicar anuncio
// @Tags anuncios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearAnuncioRequest true "Mensaje"
// @Success 201 {object} dto.AnuncioResponse
// @Router /v1/anuncio [post]
func (h *AnunciosHandler) Crear(c *gin.Context) {
	var req dto.CrearAnuncioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns every announcement, running the lazy expiry sweep first.
func (h *AnunciosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Disponibles returns only anuncios still in estado Activo.
func (h *AnunciosHandler) Disponibles(c *gin.Context) {
	resp, err := h.svc.Disponibles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnunciosHandler) Finalizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.FinalizarAnuncioRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Finalizar(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
