package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// refQueries consulta por tipo; tabla y columna nunca vienen de la entrada del usuario.
var refQueries = map[entity.RefKind]string{
	entity.RefCustomer:  `SELECT EXISTS(SELECT 1 FROM customer WHERE customer_id = $1)`,
	entity.RefStaff:     `SELECT EXISTS(SELECT 1 FROM staff WHERE staff_id = $1)`,
	entity.RefInventory: `SELECT EXISTS(SELECT 1 FROM inventory WHERE inventory_id = $1)`,
	entity.RefLanguage:  `SELECT EXISTS(SELECT 1 FROM language WHERE language_id = $1)`,
	entity.RefRental:    `SELECT EXISTS(SELECT 1 FROM rental WHERE rental_id = $1)`,
}

// ReferenceRepo verificación de claves foráneas previa a las escrituras.
type ReferenceRepo struct {
	q Querier
}

func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func (r *ReferenceRepo) Exists(ctx context.Context, kind entity.RefKind, id int64) (bool, error) {
	query, ok := refQueries[kind]
	if !ok {
		return false, fmt.Errorf("tipo de referencia desconocido: %s", kind)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", kind, err)
	}
	return exists, nil
}
