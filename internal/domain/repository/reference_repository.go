package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// ReferenceRepository verifica la existencia de filas referenciadas por clave foránea.
type ReferenceRepository interface {
	Exists(ctx context.Context, kind entity.RefKind, id int64) (bool, error)
}
