package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo tabla category.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM category`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT category_id, name, last_update FROM category ORDER BY name, category_id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.LastUpdate); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, total, rows.Err()
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT category_id, name, last_update FROM category WHERE category_id = $1`, id).
		Scan(&c.ID, &c.Name, &c.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM category WHERE lower(name) = lower($1) AND category_id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists category: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO category (name, last_update) VALUES ($1, now()) RETURNING category_id, last_update`,
		c.Name).Scan(&c.ID, &c.LastUpdate)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`UPDATE category SET name = $2, last_update = now() WHERE category_id = $1 RETURNING last_update`,
		c.ID, c.Name).Scan(&c.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("categoría", c.ID)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete falla con ErrConflict si hay películas asociadas a la categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM category WHERE category_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.Errorf(domain.ErrConflict, "la categoría %d tiene películas asociadas", id)
		}
		return false, fmt.Errorf("delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
