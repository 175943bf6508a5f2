package handler

import (
	"net/http"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
)

type SoporteHandler struct{ svc service.SoporteService }

func NewSoporteHandler(svc service.SoporteService) *SoporteHandler {
	return &SoporteHandler{svc: svc}
}

// Enviar godoc
// @Summary      Enviar mensaje de soporte
// @Description  Encola el mensaje del formulario de contacto para entrega asíncrona.
// @Tags         soporte
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.MensajeSoporteRequest true "Mensaje"
// @Success      202
// @Router       /v1/soporte [post]
func (h *SoporteHandler) Enviar(c *gin.Context) {
	var req dto.MensajeSoporteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.Enviar(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
