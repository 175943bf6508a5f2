package service

import (
	"context"

	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/worker"
)

type SoporteService interface {
	// Enviar queues the contact form for asynchronous delivery to the support
	// inbox. The HTTP request returns as soon as the job is enqueued.
	Enviar(ctx context.Context, req dto.MensajeSoporteRequest) error
}

type soporteService struct {
	dispatcher *worker.Dispatcher
}

func NewSoporteService(dispatcher *worker.Dispatcher) SoporteService {
	return &soporteService{dispatcher: dispatcher}
}

func (s *soporteService) Enviar(ctx context.Context, req dto.MensajeSoporteRequest) error {
	if s.dispatcher == nil {
		return errBadRequest("El servicio de soporte no está disponible")
	}
	return s.dispatcher.EnqueueSoporte(ctx, worker.SoporteJob{
		Name:        req.Name,
		Lastname:    req.Lastname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Subject:     req.Subject,
		Message:     req.Message,
	})
}
