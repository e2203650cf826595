package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentListQuery filtros del listado de pagos.
type PaymentListQuery struct {
	PageRequest
	CustomerID int64 `query:"customer_id"`
	StaffID    int64 `query:"staff_id"`
}

// CreatePaymentRequest alta de pago; payment_date por defecto es ahora.
type CreatePaymentRequest struct {
	CustomerID  int64           `json:"customer_id" validate:"required,gte=1"`
	StaffID     int64           `json:"staff_id" validate:"required,gte=1"`
	RentalID    *int64          `json:"rental_id" validate:"omitempty,gte=1"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date"`
}

// UpdatePaymentRequest actualización parcial del pago.
type UpdatePaymentRequest struct {
	CustomerID *int64           `json:"customer_id" validate:"omitempty,gte=1"`
	StaffID    *int64           `json:"staff_id" validate:"omitempty,gte=1"`
	RentalID   *int64           `json:"rental_id" validate:"omitempty,gte=1"`
	Amount     *decimal.Decimal `json:"amount"`
}

// PaymentListItem fila del listado de pagos.
type PaymentListItem struct {
	PaymentID   int64           `json:"payment_id"`
	CustomerID  int64           `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// PaymentResponse detalle de pago.
type PaymentResponse struct {
	PaymentID   int64           `json:"payment_id"`
	CustomerID  int64           `json:"customer_id"`
	StaffID     int64           `json:"staff_id"`
	RentalID    *int64          `json:"rental_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// PaymentEnvelope respuesta {payment} o {message, payment}.
type PaymentEnvelope struct {
	Message string          `json:"message,omitempty"`
	Payment PaymentResponse `json:"payment"`
}
