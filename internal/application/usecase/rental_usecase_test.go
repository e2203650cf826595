package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/memory"
)

type capturePublisher struct {
	events []ports.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, ev ports.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func newRentalUseCase() (*usecase.RentalUseCase, *memory.Store, *capturePublisher) {
	store := memory.NewStore()
	store.AddRef(entity.RefCustomer, 1, 2)
	store.AddRef(entity.RefStaff, 1)
	store.AddRef(entity.RefInventory, 10, 11)
	pub := &capturePublisher{}
	return usecase.NewRentalUseCase(store.Repos().Rentals, store, pub, zerolog.Nop()), store, pub
}

func rentalRequest(inventoryID int64) dto.CreateRentalRequest {
	return dto.CreateRentalRequest{InventoryID: inventoryID, CustomerID: 1, StaffID: 1}
}

func TestRentalCreate_PublicaEvento(t *testing.T) {
	uc, _, pub := newRentalUseCase()

	out, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)
	assert.Nil(t, out.Rental.ReturnDate)
	assert.False(t, out.Rental.RentalDate.IsZero(), "rental_date por defecto es ahora")
	require.Len(t, pub.events, 1)
	assert.Equal(t, ports.EventRentalCreated, pub.events[0].Type)
}

func TestRentalCreate_ItemYaAlquilado(t *testing.T) {
	uc, _, _ := newRentalUseCase()
	_, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), rentalRequest(10))
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "alquilado")
}

// lockOrderTx registra el orden de bloqueo y verificación de disponibilidad dentro de la tx.
type lockOrderTx struct {
	store *memory.Store
	calls []string
}

type recordingRentals struct {
	repository.RentalRepository
	tx *lockOrderTx
}

func (r recordingRentals) LockInventory(ctx context.Context, id int64) (bool, error) {
	r.tx.calls = append(r.tx.calls, "lock")
	return r.RentalRepository.LockInventory(ctx, id)
}

func (r recordingRentals) HasActiveRental(ctx context.Context, inventoryID, excludeID int64) (bool, error) {
	r.tx.calls = append(r.tx.calls, "check")
	return r.RentalRepository.HasActiveRental(ctx, inventoryID, excludeID)
}

func (l *lockOrderTx) Run(ctx context.Context, fn func(tx ports.Repos) error) error {
	return l.store.Run(ctx, func(tx ports.Repos) error {
		tx.Rentals = recordingRentals{RentalRepository: tx.Rentals, tx: l}
		return fn(tx)
	})
}

func TestRentalCreate_BloqueaItemAntesDeVerificar(t *testing.T) {
	_, store, _ := newRentalUseCase()
	tx := &lockOrderTx{store: store}
	uc := usecase.NewRentalUseCase(store.Repos().Rentals, tx, nil, zerolog.Nop())

	_, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "check"}, tx.calls)
}

func TestRentalCreate_ClavesForaneas(t *testing.T) {
	uc, _, _ := newRentalUseCase()
	cases := []struct {
		field string
		in    dto.CreateRentalRequest
	}{
		{"customer_id", dto.CreateRentalRequest{InventoryID: 10, CustomerID: 99, StaffID: 1}},
		{"staff_id", dto.CreateRentalRequest{InventoryID: 10, CustomerID: 1, StaffID: 99}},
		{"inventory_id", dto.CreateRentalRequest{InventoryID: 99, CustomerID: 1, StaffID: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.field, de.Field)
			assert.ErrorIs(t, err, domain.ErrBusinessRule)
		})
	}
}

func TestRentalCreate_FalloDelBrokerNoRevierte(t *testing.T) {
	uc, store, pub := newRentalUseCase()
	pub.err = errors.New("broker caído")

	out, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)
	got, err := store.Repos().Rentals.GetByID(context.Background(), out.Rental.RentalID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRentalUpdate_CambioDeItemReverificaDisponibilidad(t *testing.T) {
	uc, _, _ := newRentalUseCase()
	a, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), rentalRequest(11))
	require.NoError(t, err)

	busy := int64(11)
	_, err = uc.Update(context.Background(), a.Rental.RentalID, dto.UpdateRentalRequest{InventoryID: &busy})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	same := int64(10)
	customer := int64(2)
	out, err := uc.Update(context.Background(), a.Rental.RentalID, dto.UpdateRentalRequest{InventoryID: &same, CustomerID: &customer})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Rental.CustomerID)
}

func TestRentalReturn(t *testing.T) {
	uc, _, pub := newRentalUseCase()
	a, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)

	out, err := uc.Return(context.Background(), a.Rental.RentalID)
	require.NoError(t, err)
	assert.NotNil(t, out.Rental.ReturnDate)
	assert.Equal(t, ports.EventRentalReturned, pub.events[len(pub.events)-1].Type)

	_, err = uc.Return(context.Background(), a.Rental.RentalID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	// el ítem vuelve a estar disponible
	_, err = uc.Create(context.Background(), rentalRequest(10))
	assert.NoError(t, err)
}

func TestRentalList_FiltroYOrden(t *testing.T) {
	uc, _, _ := newRentalUseCase()
	old := time.Date(2005, 5, 24, 22, 53, 30, 0, time.UTC)
	recent := old.Add(48 * time.Hour)
	_, err := uc.Create(context.Background(), dto.CreateRentalRequest{InventoryID: 10, CustomerID: 1, StaffID: 1, RentalDate: &old})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateRentalRequest{InventoryID: 11, CustomerID: 1, StaffID: 1, RentalDate: &recent})
	require.NoError(t, err)

	out, err := uc.List(context.Background(), dto.RentalListQuery{CustomerID: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].RentalDate.Equal(recent))

	out, err = uc.List(context.Background(), dto.RentalListQuery{CustomerID: 2})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestRentalDelete(t *testing.T) {
	uc, _, _ := newRentalUseCase()
	a, err := uc.Create(context.Background(), rentalRequest(10))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), a.Rental.RentalID))
	assert.ErrorIs(t, uc.Delete(context.Background(), a.Rental.RentalID), domain.ErrNotFound)
}
