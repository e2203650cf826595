package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/pkg/metrics"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer escribe el correo en el log en lugar de enviarlo (SMTP_DISABLED=true, desarrollo).
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, mail ports.Mail) error {
	m.log.Info().
		Str("kind", mail.Kind).
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("body", mail.Body).
		Msg("correo no enviado (SMTP deshabilitado)")
	metrics.EmailsSent.WithLabelValues(mail.Kind, "logged").Inc()
	return nil
}
