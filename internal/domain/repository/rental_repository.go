package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// RentalRepository puerto de persistencia de alquileres.
type RentalRepository interface {
	List(ctx context.Context, f entity.RentalFilter) ([]*entity.Rental, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Rental, error)
	// LockInventory bloquea la fila del ítem hasta el fin de la transacción; false si no existe.
	LockInventory(ctx context.Context, inventoryID int64) (bool, error)
	// HasActiveRental indica si el ítem tiene un alquiler sin devolver, ignorando excludeRentalID (0 = ninguno).
	HasActiveRental(ctx context.Context, inventoryID, excludeRentalID int64) (bool, error)
	Create(ctx context.Context, r *entity.Rental) error
	Update(ctx context.Context, r *entity.Rental) error
	Delete(ctx context.Context, id int64) (bool, error)
}
