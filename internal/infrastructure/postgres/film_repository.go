package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var _ repository.FilmRepository = (*FilmRepo)(nil)

// rating es el enum mpaa_rating y release_year el dominio year: se leen como text e int.
const filmColumns = `f.film_id, f.title, f.description, f.release_year::int, f.language_id, f.rental_duration,
	f.rental_rate, f.length, f.replacement_cost, f.rating::text, f.special_features, f.last_update`

// FilmRepo tabla film.
type FilmRepo struct {
	q Querier
}

func NewFilmRepository(q Querier) *FilmRepo {
	return &FilmRepo{q: q}
}

func scanFilm(row pgx.Row) (*entity.Film, error) {
	var f entity.Film
	err := row.Scan(
		&f.ID, &f.Title, &f.Description, &f.ReleaseYear, &f.LanguageID, &f.RentalDuration,
		&f.RentalRate, &f.Length, &f.ReplacementCost, &f.Rating, &f.SpecialFeatures, &f.LastUpdate,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List filtra por texto (ILIKE en título y descripción) y por categoría, ordenado por título.
func (r *FilmRepo) List(ctx context.Context, f entity.FilmFilter) ([]*entity.Film, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where = append(where, fmt.Sprintf("(f.title ILIKE $%d OR f.description ILIKE $%d)", len(args), len(args)))
	}
	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM film_category fc WHERE fc.film_id = f.film_id AND fc.category_id = $%d)", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM film f`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count films: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM film f%s ORDER BY f.title, f.film_id LIMIT $%d OFFSET $%d`,
		filmColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan film: %w", err)
		}
		films = append(films, film)
	}
	return films, total, rows.Err()
}

func (r *FilmRepo) GetByID(ctx context.Context, id int64) (*entity.Film, error) {
	film, err := scanFilm(r.q.QueryRow(ctx, `SELECT `+filmColumns+` FROM film f WHERE f.film_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get film: %w", err)
	}
	return film, nil
}

func (r *FilmRepo) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO film (title, description, release_year, language_id, rental_duration, rental_rate,
			length, replacement_cost, rating, special_features, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::mpaa_rating, $10, now())
		RETURNING film_id, last_update`
	err := r.q.QueryRow(ctx, query,
		film.Title, film.Description, film.ReleaseYear, film.LanguageID, film.RentalDuration, film.RentalRate,
		film.Length, film.ReplacementCost, film.Rating, film.SpecialFeatures,
	).Scan(&film.ID, &film.LastUpdate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.FieldError(domain.ErrBusinessRule, "language_id", "el idioma no existe")
		}
		return fmt.Errorf("insert film: %w", err)
	}
	return nil
}

func (r *FilmRepo) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE film SET title = $2, description = $3, release_year = $4, language_id = $5, rental_duration = $6,
			rental_rate = $7, length = $8, replacement_cost = $9, rating = $10::mpaa_rating, last_update = now()
		WHERE film_id = $1
		RETURNING last_update`
	err := r.q.QueryRow(ctx, query,
		film.ID, film.Title, film.Description, film.ReleaseYear, film.LanguageID, film.RentalDuration,
		film.RentalRate, film.Length, film.ReplacementCost, film.Rating,
	).Scan(&film.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("película", film.ID)
		}
		if isForeignKeyViolation(err) {
			return domain.FieldError(domain.ErrBusinessRule, "language_id", "el idioma no existe")
		}
		return fmt.Errorf("update film: %w", err)
	}
	return nil
}

// Delete falla con ErrConflict si la película tiene inventario o relaciones que la referencian.
func (r *FilmRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM film WHERE film_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.Errorf(domain.ErrConflict, "la película %d tiene registros asociados", id)
		}
		return false, fmt.Errorf("delete film: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
