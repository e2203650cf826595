package ports

import (
	"context"

	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante PDF de un pago.
type ReceiptGenerator interface {
	PaymentReceipt(ctx context.Context, p *entity.Payment, siteName string) ([]byte, error)
}
