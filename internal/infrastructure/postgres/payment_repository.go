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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `payment_id, customer_id, staff_id, rental_id, amount, payment_date`

// PaymentRepo tabla payment.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.CustomerID, &p.StaffID, &p.RentalID, &p.Amount, &p.PaymentDate); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) List(ctx context.Context, f entity.PaymentFilter) ([]*entity.Payment, int, error) {
	cond, args := ownerFilter(f.CustomerID, f.StaffID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payment`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM payment%s ORDER BY payment_date DESC, payment_id DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payment WHERE payment_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO payment (customer_id, staff_id, rental_id, amount, payment_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING payment_id`,
		p.CustomerID, p.StaffID, p.RentalID, p.Amount, p.PaymentDate,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrBusinessRule, "cliente, empleado o alquiler inexistente")
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payment SET customer_id = $2, staff_id = $3, rental_id = $4, amount = $5
		WHERE payment_id = $1`,
		p.ID, p.CustomerID, p.StaffID, p.RentalID, p.Amount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrBusinessRule, "cliente, empleado o alquiler inexistente")
		}
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("pago", p.ID)
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM payment WHERE payment_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
