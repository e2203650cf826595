package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago de un cliente, opcionalmente asociado a un alquiler.
type Payment struct {
	ID          int64
	CustomerID  int64
	StaffID     int64
	RentalID    *int64
	Amount      decimal.Decimal
	PaymentDate time.Time
}

// PaymentFilter filtros del listado de pagos (0 = sin filtro).
type PaymentFilter struct {
	CustomerID int64
	StaffID    int64
	Limit      int
	Offset     int
}
