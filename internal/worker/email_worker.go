package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/martinmorag/manejo-de-empresas/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker processes the jobs of QueueEmail: lockout warnings sent to the
// account holder and contact-form messages forwarded to the support inbox.
type EmailWorker struct {
	mailer       *infra.Mailer
	supportEmail string
}

func NewEmailWorker(mailer *infra.Mailer, supportEmail string) *EmailWorker {
	return &EmailWorker{mailer: mailer, supportEmail: supportEmail}
}

func (w *EmailWorker) Process(_ context.Context, jobType string, raw json.RawMessage) error {
	switch jobType {
	case JobTypeBloqueo:
		return w.processBloqueo(raw)
	case JobTypeSoporte:
		return w.processSoporte(raw)
	default:
		return fmt.Errorf("email_worker: unknown job type %q", jobType)
	}
}

func (w *EmailWorker) processBloqueo(raw json.RawMessage) error {
	var payload BloqueoJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid bloqueo payload: %w", err)
	}
	if payload.Email == "" {
		log.Warn().Msg("email_worker: empty email in bloqueo job, skipping")
		return nil
	}

	subject := "Alerta de seguridad: cuenta temporalmente bloqueada"
	body := "Detectamos demasiados intentos fallidos de inicio de sesión en su cuenta.\n" +
		"Por seguridad, los inicios de sesión quedaron bloqueados por unos minutos.\n\n" +
		"Si no fue usted, le recomendamos cambiar su contraseña."

	if err := w.mailer.Send([]string{payload.Email}, "", subject, body); err != nil {
		return fmt.Errorf("email_worker: send bloqueo: %w", err)
	}
	log.Info().Str("to", payload.Email).Msg("email_worker: lockout warning sent")
	return nil
}

func (w *EmailWorker) processSoporte(raw json.RawMessage) error {
	var payload SoporteJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid soporte payload: %w", err)
	}
	if w.supportEmail == "" {
		log.Warn().Msg("email_worker: no support inbox configured, dropping soporte job")
		return nil
	}

	subject := fmt.Sprintf("[Soporte] %s", payload.Subject)
	body := fmt.Sprintf(
		"Nombre: %s %s\nEmail: %s\nTeléfono: %s\n\n%s",
		payload.Name, payload.Lastname, payload.Email, payload.PhoneNumber, payload.Message,
	)

	if err := w.mailer.Send([]string{w.supportEmail}, payload.Email, subject, body); err != nil {
		return fmt.Errorf("email_worker: send soporte: %w", err)
	}
	log.Info().Str("from", payload.Email).Msg("email_worker: support message forwarded")
	return nil
}
