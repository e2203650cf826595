// Package mail implementa ports.Mailer sobre SMTP (gomail) protegido con circuit breaker.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/pkg/config"
	"github.com/jhoicas/dvdrental-api/pkg/metrics"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

const breakerName = "smtp"

// ErrCircuitOpen el breaker rechazó el envío sin intentar contactar al servidor.
var ErrCircuitOpen = errors.New("servidor de correo no disponible temporalmente")

// sender lo cumple *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía correo de texto plano. Tras 5 fallos consecutivos el breaker se abre
// durante un minuto y los envíos fallan de inmediato.
type SMTPMailer struct {
	from   string
	dialer sender
	cb     *gobreaker.CircuitBreaker[struct{}]
	log    zerolog.Logger
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log zerolog.Logger) *SMTPMailer {
	return newSMTPMailer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), log)
}

func newSMTPMailer(from string, d sender, log zerolog.Logger) *SMTPMailer {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cambio de estado del circuit breaker")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &SMTPMailer{from: from, dialer: d, cb: cb, log: log}
}

// Send implementa ports.Mailer.
func (m *SMTPMailer) Send(ctx context.Context, mail ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)

	_, err := m.cb.Execute(func() (struct{}, error) {
		return struct{}{}, m.dialer.DialAndSend(msg)
	})
	switch {
	case err == nil:
		metrics.EmailsSent.WithLabelValues(mail.Kind, "ok").Inc()
		m.log.Info().Str("kind", mail.Kind).Str("to", mail.To).Msg("correo enviado")
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.EmailsSent.WithLabelValues(mail.Kind, "rejected").Inc()
		return ErrCircuitOpen
	default:
		metrics.EmailsSent.WithLabelValues(mail.Kind, "error").Inc()
		return fmt.Errorf("smtp send: %w", err)
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
