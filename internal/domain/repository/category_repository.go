package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// ExistsByName compara sin distinguir mayúsculas; excludeID permite ignorar la propia fila al actualizar.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
}
