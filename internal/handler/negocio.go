package handler

import (
	"net/http"

	"github.com/martinmorag/manejo-de-empresas/internal/middleware"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
)

type NegocioHandler struct{ svc service.NegocioService }

func NewNegocioHandler(svc service.NegocioService) *NegocioHandler {
	return &NegocioHandler{svc: svc}
}

// IvaPercentage returns the tenant's tax rate so the sale form can compute
// line totals client-side.
func (h *NegocioHandler) IvaPercentage(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	iva, err := h.svc.IvaPercentage(c.Request.Context(), tenant.NegocioID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"iva_percentage": iva})
}
