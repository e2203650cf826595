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

var _ repository.RentalRepository = (*RentalRepo)(nil)

const rentalColumns = `rental_id, rental_date, inventory_id, customer_id, return_date, staff_id, last_update`

// RentalRepo tabla rental.
type RentalRepo struct {
	q Querier
}

func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var x entity.Rental
	if err := row.Scan(&x.ID, &x.RentalDate, &x.InventoryID, &x.CustomerID, &x.ReturnDate, &x.StaffID, &x.LastUpdate); err != nil {
		return nil, err
	}
	return &x, nil
}

// List filtra por cliente y empleado, más recientes primero.
func (r *RentalRepo) List(ctx context.Context, f entity.RentalFilter) ([]*entity.Rental, int, error) {
	cond, args := ownerFilter(f.CustomerID, f.StaffID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rental`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rentals: %w", err)
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM rental%s ORDER BY rental_date DESC, rental_id DESC LIMIT $%d OFFSET $%d`,
		rentalColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var out []*entity.Rental
	for rows.Next() {
		x, err := scanRental(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rental: %w", err)
		}
		out = append(out, x)
	}
	return out, total, rows.Err()
}

// ownerFilter WHERE opcional por customer_id y staff_id (0 = sin filtro).
func ownerFilter(customerID, staffID int64) (string, []any) {
	var (
		where []string
		args  []any
	)
	if customerID != 0 {
		args = append(args, customerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if staffID != 0 {
		args = append(args, staffID)
		where = append(where, fmt.Sprintf("staff_id = $%d", len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*entity.Rental, error) {
	x, err := scanRental(r.q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rental WHERE rental_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return x, nil
}

// LockInventory serializa los alquileres concurrentes del mismo ítem (SELECT ... FOR UPDATE).
// Fuera de una transacción el bloqueo se libera al terminar la sentencia.
func (r *RentalRepo) LockInventory(ctx context.Context, inventoryID int64) (bool, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT inventory_id FROM inventory WHERE inventory_id = $1 FOR UPDATE`, inventoryID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock inventory: %w", err)
	}
	return true, nil
}

func (r *RentalRepo) HasActiveRental(ctx context.Context, inventoryID, excludeRentalID int64) (bool, error) {
	var busy bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rental WHERE inventory_id = $1 AND return_date IS NULL AND rental_id <> $2)`,
		inventoryID, excludeRentalID).Scan(&busy)
	if err != nil {
		return false, fmt.Errorf("check active rental: %w", err)
	}
	return busy, nil
}

func (r *RentalRepo) Create(ctx context.Context, x *entity.Rental) error {
	query := `
		INSERT INTO rental (rental_date, inventory_id, customer_id, return_date, staff_id, last_update)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING rental_id, last_update`
	err := r.q.QueryRow(ctx, query, x.RentalDate, x.InventoryID, x.CustomerID, x.ReturnDate, x.StaffID).
		Scan(&x.ID, &x.LastUpdate)
	if err != nil {
		if isUniqueViolation(err) {
			// idx_unq_rental_rental_date_inventory_id_customer_id
			return domain.Errorf(domain.ErrBusinessRule, "ya existe un alquiler con la misma fecha, ítem y cliente")
		}
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrBusinessRule, "cliente, empleado o ítem de inventario inexistente")
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

func (r *RentalRepo) Update(ctx context.Context, x *entity.Rental) error {
	query := `
		UPDATE rental SET inventory_id = $2, customer_id = $3, return_date = $4, staff_id = $5, last_update = now()
		WHERE rental_id = $1
		RETURNING last_update`
	err := r.q.QueryRow(ctx, query, x.ID, x.InventoryID, x.CustomerID, x.ReturnDate, x.StaffID).Scan(&x.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("alquiler", x.ID)
		}
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrBusinessRule, "cliente, empleado o ítem de inventario inexistente")
		}
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

// Delete los pagos asociados quedan con rental_id NULL (ON DELETE SET NULL del esquema).
func (r *RentalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM rental WHERE rental_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.Errorf(domain.ErrConflict, "el alquiler %d tiene pagos asociados", id)
		}
		return false, fmt.Errorf("delete rental: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
