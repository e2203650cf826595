package entity

import "time"

// Rental alquiler de un ítem de inventario. ReturnDate nil = alquiler activo.
type Rental struct {
	ID          int64
	RentalDate  time.Time
	InventoryID int64
	CustomerID  int64
	ReturnDate  *time.Time
	StaffID     int64
	LastUpdate  time.Time
}

// IsActive indica si el ítem sigue sin devolverse.
func (r *Rental) IsActive() bool {
	return r.ReturnDate == nil
}

// RentalFilter filtros del listado de alquileres (0 = sin filtro).
type RentalFilter struct {
	CustomerID int64
	StaffID    int64
	Limit      int
	Offset     int
}
