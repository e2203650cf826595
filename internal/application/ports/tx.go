package ports

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

// Repos repositorios atados a una misma conexión (pool o transacción).
type Repos struct {
	Users      repository.UserRepository
	Films      repository.FilmRepository
	Categories repository.CategoryRepository
	Rentals    repository.RentalRepository
	Payments   repository.PaymentRepository
	Refs       repository.ReferenceRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y el error se propaga sin envolver.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}
