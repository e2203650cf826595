package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

// RentalUseCase alquileres. Un ítem de inventario admite un solo alquiler sin devolver:
// la fila del ítem se bloquea dentro de la transacción antes de verificar y escribir.
type RentalUseCase struct {
	rentals repository.RentalRepository
	tx      ports.TxRunner
	events  ports.EventPublisher
	log     zerolog.Logger
	now     func() time.Time
}

// NewRentalUseCase construye el caso de uso. events nil = sin publicación.
func NewRentalUseCase(rentals repository.RentalRepository, tx ports.TxRunner, events ports.EventPublisher, log zerolog.Logger) *RentalUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &RentalUseCase{rentals: rentals, tx: tx, events: events, log: log, now: time.Now}
}

// List ordena por rental_date descendente.
func (uc *RentalUseCase) List(ctx context.Context, q dto.RentalListQuery) (*dto.ListResult[dto.RentalListItem], error) {
	q.Normalize()
	rentals, total, err := uc.rentals.List(ctx, entity.RentalFilter{
		CustomerID: q.CustomerID,
		StaffID:    q.StaffID,
		Limit:      q.PageSize,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RentalListItem, 0, len(rentals))
	for _, r := range rentals {
		items = append(items, dto.RentalListItem{
			RentalID:   r.ID,
			CustomerID: r.CustomerID,
			RentalDate: r.RentalDate,
			ReturnDate: r.ReturnDate,
		})
	}
	return &dto.ListResult[dto.RentalListItem]{Items: items, Total: total}, nil
}

func (uc *RentalUseCase) Get(ctx context.Context, id int64) (*dto.RentalResponse, error) {
	r, err := mustGetRental(ctx, uc.rentals, id)
	if err != nil {
		return nil, err
	}
	out := toRentalResponse(r)
	return &out, nil
}

func mustGetRental(ctx context.Context, rentals repository.RentalRepository, id int64) (*entity.Rental, error) {
	r, err := rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NotFound("alquiler", id)
	}
	return r, nil
}

// Create verifica cliente, empleado e ítem, y que el ítem no esté alquilado.
func (uc *RentalUseCase) Create(ctx context.Context, in dto.CreateRentalRequest) (*dto.RentalEnvelope, error) {
	rental := &entity.Rental{
		RentalDate:  uc.now(),
		InventoryID: in.InventoryID,
		CustomerID:  in.CustomerID,
		StaffID:     in.StaffID,
		ReturnDate:  in.ReturnDate,
	}
	if in.RentalDate != nil {
		rental.RentalDate = *in.RentalDate
	}
	if rental.ReturnDate != nil && rental.ReturnDate.Before(rental.RentalDate) {
		return nil, domain.FieldError(domain.ErrInvalidInput, "return_date", "return_date no puede ser anterior a rental_date")
	}

	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		if err := ensureRef(ctx, tx.Refs, entity.RefCustomer, rental.CustomerID, "customer_id"); err != nil {
			return err
		}
		if err := ensureRef(ctx, tx.Refs, entity.RefStaff, rental.StaffID, "staff_id"); err != nil {
			return err
		}
		if err := ensureAvailable(ctx, tx, rental.InventoryID, 0); err != nil {
			return err
		}
		return tx.Rentals.Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, ports.EventRentalCreated, rental)
	return &dto.RentalEnvelope{Message: "Alquiler creado correctamente.", Rental: toRentalResponse(rental)}, nil
}

// ensureAvailable bloquea el ítem y comprueba que exista y no tenga otro alquiler activo.
func ensureAvailable(ctx context.Context, tx ports.Repos, inventoryID, excludeRentalID int64) error {
	found, err := tx.Rentals.LockInventory(ctx, inventoryID)
	if err != nil {
		return err
	}
	if !found {
		return missingRef(entity.RefInventory, inventoryID, "inventory_id")
	}
	busy, err := tx.Rentals.HasActiveRental(ctx, inventoryID, excludeRentalID)
	if err != nil {
		return err
	}
	if busy {
		return domain.FieldError(domain.ErrBusinessRule, "inventory_id", "el ítem de inventario está alquilado actualmente")
	}
	return nil
}

// Update parcial; solo verifica las claves foráneas que cambian.
func (uc *RentalUseCase) Update(ctx context.Context, id int64, in dto.UpdateRentalRequest) (*dto.RentalEnvelope, error) {
	var rental *entity.Rental
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		var err error
		rental, err = mustGetRental(ctx, tx.Rentals, id)
		if err != nil {
			return err
		}
		if in.CustomerID != nil && *in.CustomerID != rental.CustomerID {
			if err := ensureRef(ctx, tx.Refs, entity.RefCustomer, *in.CustomerID, "customer_id"); err != nil {
				return err
			}
			rental.CustomerID = *in.CustomerID
		}
		if in.StaffID != nil && *in.StaffID != rental.StaffID {
			if err := ensureRef(ctx, tx.Refs, entity.RefStaff, *in.StaffID, "staff_id"); err != nil {
				return err
			}
			rental.StaffID = *in.StaffID
		}
		if in.InventoryID != nil && *in.InventoryID != rental.InventoryID {
			if err := ensureAvailable(ctx, tx, *in.InventoryID, rental.ID); err != nil {
				return err
			}
			rental.InventoryID = *in.InventoryID
		}
		if in.ReturnDate != nil {
			if in.ReturnDate.Before(rental.RentalDate) {
				return domain.FieldError(domain.ErrInvalidInput, "return_date", "return_date no puede ser anterior a rental_date")
			}
			rental.ReturnDate = in.ReturnDate
		}
		return tx.Rentals.Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}
	return &dto.RentalEnvelope{Message: "Alquiler actualizado correctamente.", Rental: toRentalResponse(rental)}, nil
}

// Return registra la devolución con la fecha actual.
func (uc *RentalUseCase) Return(ctx context.Context, id int64) (*dto.RentalEnvelope, error) {
	var rental *entity.Rental
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		var err error
		rental, err = mustGetRental(ctx, tx.Rentals, id)
		if err != nil {
			return err
		}
		if !rental.IsActive() {
			return domain.Errorf(domain.ErrBusinessRule, "el alquiler %d ya fue devuelto", id)
		}
		now := uc.now()
		rental.ReturnDate = &now
		return tx.Rentals.Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, ports.EventRentalReturned, rental)
	return &dto.RentalEnvelope{Message: "Devolución registrada correctamente.", Rental: toRentalResponse(rental)}, nil
}

func (uc *RentalUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.rentals.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("alquiler", id)
	}
	return nil
}

// publish se llama tras el commit; un fallo del broker solo se registra.
func (uc *RentalUseCase) publish(ctx context.Context, eventType string, r *entity.Rental) {
	ev := ports.Event{Type: eventType, OccurredAt: uc.now(), Payload: toRentalResponse(r)}
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", eventType).Int64("rental_id", r.ID).Msg("no se pudo publicar el evento")
	}
}

func toRentalResponse(r *entity.Rental) dto.RentalResponse {
	return dto.RentalResponse{
		RentalID:    r.ID,
		RentalDate:  r.RentalDate,
		InventoryID: r.InventoryID,
		CustomerID:  r.CustomerID,
		ReturnDate:  r.ReturnDate,
		StaffID:     r.StaffID,
		LastUpdate:  r.LastUpdate,
	}
}
