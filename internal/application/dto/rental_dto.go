package dto

import "time"

// RentalListQuery filtros del listado de alquileres.
type RentalListQuery struct {
	PageRequest
	CustomerID int64 `query:"customer_id"`
	StaffID    int64 `query:"staff_id"`
}

// CreateRentalRequest alta de alquiler; rental_date por defecto es ahora.
type CreateRentalRequest struct {
	InventoryID int64      `json:"inventory_id" validate:"required,gte=1"`
	CustomerID  int64      `json:"customer_id" validate:"required,gte=1"`
	StaffID     int64      `json:"staff_id" validate:"required,gte=1"`
	RentalDate  *time.Time `json:"rental_date"`
	ReturnDate  *time.Time `json:"return_date"`
}

// UpdateRentalRequest actualización parcial del alquiler.
type UpdateRentalRequest struct {
	InventoryID *int64     `json:"inventory_id" validate:"omitempty,gte=1"`
	CustomerID  *int64     `json:"customer_id" validate:"omitempty,gte=1"`
	StaffID     *int64     `json:"staff_id" validate:"omitempty,gte=1"`
	ReturnDate  *time.Time `json:"return_date"`
}

// RentalListItem fila del listado de alquileres.
type RentalListItem struct {
	RentalID   int64      `json:"rental_id"`
	CustomerID int64      `json:"customer_id"`
	RentalDate time.Time  `json:"rental_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// RentalResponse detalle de alquiler.
type RentalResponse struct {
	RentalID    int64      `json:"rental_id"`
	RentalDate  time.Time  `json:"rental_date"`
	InventoryID int64      `json:"inventory_id"`
	CustomerID  int64      `json:"customer_id"`
	ReturnDate  *time.Time `json:"return_date"`
	StaffID     int64      `json:"staff_id"`
	LastUpdate  time.Time  `json:"last_update"`
}

// RentalEnvelope respuesta {rental} o {message, rental}.
type RentalEnvelope struct {
	Message string         `json:"message,omitempty"`
	Rental  RentalResponse `json:"rental"`
}
