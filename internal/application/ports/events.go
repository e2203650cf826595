package ports

import (
	"context"
	"time"
)

// Claves de ruteo de los eventos de dominio.
const (
	EventRentalCreated  = "rental.created"
	EventRentalReturned = "rental.returned"
	EventPaymentCreated = "payment.created"
)

// Event evento de dominio publicado tras confirmar la transacción.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher puerto de salida para eventos. Los fallos de publicación no revierten la operación.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher descarta los eventos (broker no configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
