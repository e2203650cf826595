package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// FilmRepository puerto de persistencia de películas.
type FilmRepository interface {
	// List devuelve la página pedida ordenada por título y el total que cumple el filtro.
	List(ctx context.Context, f entity.FilmFilter) ([]*entity.Film, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Film, error)
	// Create inserta y completa ID y LastUpdate.
	Create(ctx context.Context, film *entity.Film) error
	Update(ctx context.Context, film *entity.Film) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
}
