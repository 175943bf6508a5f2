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

type DeudasHandler struct{ svc service.DeudaService }

func NewDeudasHandler(svc service.DeudaService) *DeudasHandler { return &DeudasHandler{svc: svc} }

// Listar godoc
// @Summary Listar deudas
// @Tags deudas
// @Produce json
// @Security BearerAuth
// @Param year  query int false "Año"
// @Param month query int false "Mes (1-12)"
// @Success 200 {array} dto.DeudaResponse
// @Router /v1/deuda [get]
func (h *DeudasHandler) Listar(c *gin.Context) {
	var filter dto.DeudaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.Listar(c.Request.Context(), tenant.NegocioID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Saldar godoc
// @Summary      Saldar deuda
// @Description  Marca la venta como pagada por completo y elimina la deuda.
// @Tags         deudas
// @Security     BearerAuth
// @Param        id path string true "UUID de la deuda"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/deuda/{id}/saldar [post]
func (h *DeudasHandler) Saldar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	tenant := middleware.GetTenant(c)

	if err := h.svc.Saldar(c.Request.Context(), tenant.NegocioID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
