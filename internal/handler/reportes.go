package handler

import (
	"net/http"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Overview godoc
// @Summary Resumen del mes en curso
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OverviewResponse
// @Router /v1/overview [get]
func (h *ReportesHandler) Overview(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.Overview(c.Request.Context(), tenant.UsuarioID, tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NetRevenue godoc
// @Summary Ingreso neto del mes (ventas menos deuda activa)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NetRevenueResponse
// @Router /v1/overview/revenue [get]
func (h *ReportesHandler) NetRevenue(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.NetRevenue(c.Request.Context(), tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) PorProducto(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.PorProducto(c.Request.Context(), tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) PorMetodoPago(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.PorMetodoPago(c.Request.Context(), tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UltimasMensuales godoc
// @Summary Ventas de los últimos meses, un bucket por mes
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.VentaMensual
// @Router /v1/venta/ultimas [get]
func (h *ReportesHandler) UltimasMensuales(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	resp, err := h.svc.UltimasMensuales(c.Request.Context(), tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) PorNegocio(c *gin.Context) {
	resp, err := h.svc.PorNegocio(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AccesosDirectos returns the user's saved dashboard shortcuts.
func (h *ReportesHandler) AccesosDirectos(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	accesos, err := h.svc.AccesosDirectos(c.Request.Context(), tenant.UsuarioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accesos_directos": accesos})
}

func (h *ReportesHandler) GuardarAccesosDirectos(c *gin.Context) {
	var req dto.AccesosDirectosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	tenant := middleware.GetTenant(c)

	if err := h.svc.GuardarAccesosDirectos(c.Request.Context(), tenant.UsuarioID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
