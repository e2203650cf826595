package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo reportes de rentabilidad sobre los procedimientos almacenados de dvdrental.
// year NULL = todos los años agrupados por año.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) MostProfitableCategories(ctx context.Context, year *int) ([]entity.CategoryRevenue, error) {
	const query = `
	SELECT category_id::bigint, category_name::text, year::int, total_revenue::numeric,
	       rental_count::bigint, film_count::bigint
	FROM get_most_profitable_categories_by_year($1::int)`

	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("most profitable categories: %w", err)
	}
	defer rows.Close()

	var out []entity.CategoryRevenue
	for rows.Next() {
		var c entity.CategoryRevenue
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Year, &c.TotalRevenue, &c.RentalCount, &c.FilmCount); err != nil {
			return nil, fmt.Errorf("scan category revenue: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) MostProfitableFilms(ctx context.Context, year *int, limit int) ([]entity.FilmRevenue, error) {
	const query = `
	SELECT film_id::bigint, title::text, year::int, total_revenue::numeric,
	       rental_count::bigint, category_names::text[]
	FROM get_most_profitable_films_by_year($1::int, $2::int)`

	rows, err := r.q.Query(ctx, query, year, limit)
	if err != nil {
		return nil, fmt.Errorf("most profitable films: %w", err)
	}
	defer rows.Close()

	var out []entity.FilmRevenue
	for rows.Next() {
		var f entity.FilmRevenue
		if err := rows.Scan(&f.FilmID, &f.Title, &f.Year, &f.TotalRevenue, &f.RentalCount, &f.CategoryNames); err != nil {
			return nil, fmt.Errorf("scan film revenue: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
