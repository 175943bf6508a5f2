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

type PerfilHandler struct{ svc service.PerfilService }

func NewPerfilHandler(svc service.PerfilService) *PerfilHandler { return &PerfilHandler{svc: svc} }

// perfilUsuarioID goes through the JWT claims, not TenantAuth: the profile is
// reachable for accounts that have no negocio yet.
func perfilUsuarioID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *PerfilHandler) Obtener(c *gin.Context) {
	usuarioID, ok := perfilUsuarioID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Obtener(c.Request.Context(), usuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PerfilHandler) Actualizar(c *gin.Context) {
	usuarioID, ok := perfilUsuarioID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Actualizar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarSeguridad godoc
// @Summary Cambiar email o contraseña
// @Tags perfil
// @Accept json
// @Security BearerAuth
// @Param body body dto.ActualizarSeguridadRequest true "Cambios"
// @Success 204
// @Failure 401 {object} apierror.APIError
// @Router /v1/perfil/seguridad [put]
func (h *PerfilHandler) ActualizarSeguridad(c *gin.Context) {
	usuarioID, ok := perfilUsuarioID(c)
	if !ok {
		return
	}
	var req dto.ActualizarSeguridadRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.ActualizarSeguridad(c.Request.Context(), usuarioID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
