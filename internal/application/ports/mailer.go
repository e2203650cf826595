package ports

import "context"

// Mail mensaje transaccional de texto plano.
type Mail struct {
	To      string
	Subject string
	Body    string
	Kind    string // activation | password_reset (métricas y logs)
}

// Mailer puerto de salida para el envío de correo. Cualquier adaptador (SMTP, log, mock) lo implementa.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}
