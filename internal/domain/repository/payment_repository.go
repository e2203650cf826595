package repository

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia de pagos.
type PaymentRepository interface {
	List(ctx context.Context, f entity.PaymentFilter) ([]*entity.Payment, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	Create(ctx context.Context, p *entity.Payment) error
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id int64) (bool, error)
}
