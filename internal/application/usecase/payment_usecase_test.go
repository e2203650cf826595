package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/memory"
)

type fakeReceipts struct{ site string }

func (f *fakeReceipts) PaymentReceipt(_ context.Context, p *entity.Payment, siteName string) ([]byte, error) {
	f.site = siteName
	return []byte("%PDF-" + p.Amount.StringFixed(2)), nil
}

func newPaymentUseCase() (*usecase.PaymentUseCase, *capturePublisher, *fakeReceipts) {
	uc, _, pub, receipts := newPaymentUseCaseWithStore()
	return uc, pub, receipts
}

func newPaymentUseCaseWithStore() (*usecase.PaymentUseCase, *memory.Store, *capturePublisher, *fakeReceipts) {
	store := memory.NewStore()
	store.AddRef(entity.RefCustomer, 1)
	store.AddRef(entity.RefStaff, 1)
	store.AddRef(entity.RefRental, 7)
	pub := &capturePublisher{}
	receipts := &fakeReceipts{}
	r := store.Repos()
	return usecase.NewPaymentUseCase(r.Payments, store, receipts, pub, "DVD Rental", zerolog.Nop()), store, pub, receipts
}

func paymentRequest(amount string) dto.CreatePaymentRequest {
	rental := int64(7)
	return dto.CreatePaymentRequest{CustomerID: 1, StaffID: 1, RentalID: &rental, Amount: decimal.RequireFromString(amount)}
}

func TestPaymentCreate(t *testing.T) {
	uc, pub, _ := newPaymentUseCase()

	out, err := uc.Create(context.Background(), paymentRequest("2.99"))
	require.NoError(t, err)
	assert.True(t, out.Payment.Amount.Equal(decimal.RequireFromString("2.99")))
	assert.False(t, out.Payment.PaymentDate.IsZero())
	require.Len(t, pub.events, 1)
	assert.Equal(t, ports.EventPaymentCreated, pub.events[0].Type)
}

func TestPaymentCreate_MontoNoPositivo(t *testing.T) {
	uc, _, _ := newPaymentUseCase()
	for _, amount := range []string{"0", "-5.00"} {
		_, err := uc.Create(context.Background(), paymentRequest(amount))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}
}

func TestPaymentCreate_AlquilerInexistente(t *testing.T) {
	uc, _, _ := newPaymentUseCase()
	in := paymentRequest("1.00")
	missing := int64(404)
	in.RentalID = &missing

	_, err := uc.Create(context.Background(), in)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "rental_id", de.Field)
}

func TestPaymentUpdate(t *testing.T) {
	uc, _, _ := newPaymentUseCase()
	created, err := uc.Create(context.Background(), paymentRequest("2.99"))
	require.NoError(t, err)

	amount := decimal.RequireFromString("5.99")
	out, err := uc.Update(context.Background(), created.Payment.PaymentID, dto.UpdatePaymentRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, out.Payment.Amount.Equal(amount))

	staff := int64(50)
	_, err = uc.Update(context.Background(), created.Payment.PaymentID, dto.UpdatePaymentRequest{StaffID: &staff})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	_, err = uc.Update(context.Background(), 999, dto.UpdatePaymentRequest{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentReceipt(t *testing.T) {
	uc, _, receipts := newPaymentUseCase()
	created, err := uc.Create(context.Background(), paymentRequest("2.99"))
	require.NoError(t, err)

	pdf, err := uc.Receipt(context.Background(), created.Payment.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2.99", string(pdf))
	assert.Equal(t, "DVD Rental", receipts.site)

	_, err = uc.Receipt(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentDelete(t *testing.T) {
	uc, _, _ := newPaymentUseCase()
	created, err := uc.Create(context.Background(), paymentRequest("2.99"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.Payment.PaymentID))
	assert.ErrorIs(t, uc.Delete(context.Background(), created.Payment.PaymentID), domain.ErrNotFound)
}

func TestPaymentEscrituras_RollbackSiFallaLaTransaccion(t *testing.T) {
	base, store, _, receipts := newPaymentUseCaseWithStore()
	created, err := base.Create(context.Background(), paymentRequest("2.99"))
	require.NoError(t, err)

	pub := &capturePublisher{}
	uc := usecase.NewPaymentUseCase(store.Repos().Payments, commitFailTx{store: store, err: errCommit}, receipts, pub, "DVD Rental", zerolog.Nop())

	_, err = uc.Create(context.Background(), paymentRequest("9.99"))
	assert.ErrorIs(t, err, errCommit)
	assert.Empty(t, pub.events, "sin commit no se publica el evento")

	amount := decimal.RequireFromString("7.50")
	_, err = uc.Update(context.Background(), created.Payment.PaymentID, dto.UpdatePaymentRequest{Amount: &amount})
	assert.ErrorIs(t, err, errCommit)
	assert.ErrorIs(t, uc.Delete(context.Background(), created.Payment.PaymentID), errCommit)

	out, err := base.List(context.Background(), dto.PaymentListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Amount.Equal(decimal.RequireFromString("2.99")))
}
