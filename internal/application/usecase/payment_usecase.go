package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

// PaymentUseCase pagos y su comprobante PDF. Claves foráneas y escritura en una misma transacción.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	tx       ports.TxRunner
	receipts ports.ReceiptGenerator
	events   ports.EventPublisher
	siteName string
	log      zerolog.Logger
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso. events nil = sin publicación.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	tx ports.TxRunner,
	receipts ports.ReceiptGenerator,
	events ports.EventPublisher,
	siteName string,
	log zerolog.Logger,
) *PaymentUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &PaymentUseCase{
		payments: payments,
		tx:       tx,
		receipts: receipts,
		events:   events,
		siteName: siteName,
		log:      log,
		now:      time.Now,
	}
}

// List ordena por payment_date descendente.
func (uc *PaymentUseCase) List(ctx context.Context, q dto.PaymentListQuery) (*dto.ListResult[dto.PaymentListItem], error) {
	q.Normalize()
	payments, total, err := uc.payments.List(ctx, entity.PaymentFilter{
		CustomerID: q.CustomerID,
		StaffID:    q.StaffID,
		Limit:      q.PageSize,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentListItem, 0, len(payments))
	for _, p := range payments {
		items = append(items, dto.PaymentListItem{
			PaymentID:   p.ID,
			CustomerID:  p.CustomerID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
		})
	}
	return &dto.ListResult[dto.PaymentListItem]{Items: items, Total: total}, nil
}

func (uc *PaymentUseCase) Get(ctx context.Context, id int64) (*dto.PaymentResponse, error) {
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toPaymentResponse(p)
	return &out, nil
}

func (uc *PaymentUseCase) mustGet(ctx context.Context, id int64) (*entity.Payment, error) {
	return getPayment(ctx, uc.payments, id)
}

func getPayment(ctx context.Context, payments repository.PaymentRepository, id int64) (*entity.Payment, error) {
	p, err := payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("pago", id)
	}
	return p, nil
}

func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentEnvelope, error) {
	if err := ensurePositive(in.Amount); err != nil {
		return nil, err
	}
	p := &entity.Payment{
		CustomerID:  in.CustomerID,
		StaffID:     in.StaffID,
		RentalID:    in.RentalID,
		Amount:      in.Amount,
		PaymentDate: uc.now(),
	}
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		if err := checkPaymentRefs(ctx, tx.Refs, p.CustomerID, p.StaffID, p.RentalID); err != nil {
			return err
		}
		return tx.Payments.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	ev := ports.Event{Type: ports.EventPaymentCreated, OccurredAt: uc.now(), Payload: toPaymentResponse(p)}
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Int64("payment_id", p.ID).Msg("no se pudo publicar payment.created")
	}
	return &dto.PaymentEnvelope{Message: "Pago registrado correctamente.", Payment: toPaymentResponse(p)}, nil
}

func (uc *PaymentUseCase) Update(ctx context.Context, id int64, in dto.UpdatePaymentRequest) (*dto.PaymentEnvelope, error) {
	if in.Amount != nil {
		if err := ensurePositive(*in.Amount); err != nil {
			return nil, err
		}
	}
	var p *entity.Payment
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		var err error
		if p, err = getPayment(ctx, tx.Payments, id); err != nil {
			return err
		}
		var customerID, staffID int64
		var rentalID *int64
		if in.CustomerID != nil && *in.CustomerID != p.CustomerID {
			customerID = *in.CustomerID
			p.CustomerID = customerID
		}
		if in.StaffID != nil && *in.StaffID != p.StaffID {
			staffID = *in.StaffID
			p.StaffID = staffID
		}
		if in.RentalID != nil {
			rentalID = in.RentalID
			p.RentalID = in.RentalID
		}
		if in.Amount != nil {
			p.Amount = *in.Amount
		}
		if err := checkPaymentRefs(ctx, tx.Refs, customerID, staffID, rentalID); err != nil {
			return err
		}
		return tx.Payments.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PaymentEnvelope{Message: "Pago actualizado correctamente.", Payment: toPaymentResponse(p)}, nil
}

// checkPaymentRefs verifica las claves informadas; 0 o nil se omite.
func checkPaymentRefs(ctx context.Context, refs repository.ReferenceRepository, customerID, staffID int64, rentalID *int64) error {
	if customerID != 0 {
		if err := ensureRef(ctx, refs, entity.RefCustomer, customerID, "customer_id"); err != nil {
			return err
		}
	}
	if staffID != 0 {
		if err := ensureRef(ctx, refs, entity.RefStaff, staffID, "staff_id"); err != nil {
			return err
		}
	}
	if rentalID != nil {
		return ensureRef(ctx, refs, entity.RefRental, *rentalID, "rental_id")
	}
	return nil
}

func (uc *PaymentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		ok, err := tx.Payments.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("pago", id)
		}
		return nil
	})
}

// Receipt genera el comprobante PDF del pago.
func (uc *PaymentUseCase) Receipt(ctx context.Context, id int64) ([]byte, error) {
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.PaymentReceipt(ctx, p, uc.siteName)
}

func ensurePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.FieldError(domain.ErrInvalidInput, "amount", "el monto debe ser mayor que cero")
	}
	return nil
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		PaymentID:   p.ID,
		CustomerID:  p.CustomerID,
		StaffID:     p.StaffID,
		RentalID:    p.RentalID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
	}
}
