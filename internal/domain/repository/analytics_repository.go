package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura sobre los procedimientos de rentabilidad.
// year nil = todos los años.
type AnalyticsRepository interface {
	MostProfitableCategories(ctx context.Context, year *int) ([]entity.CategoryRevenue, error)
	MostProfitableFilms(ctx context.Context, year *int, limit int) ([]entity.FilmRevenue, error)
}
