package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
)

var refLabels = map[entity.RefKind]string{
	entity.RefCustomer:  "cliente",
	entity.RefStaff:     "empleado",
	entity.RefInventory: "ítem de inventario",
	entity.RefLanguage:  "idioma",
	entity.RefRental:    "alquiler",
}

// ensureRef verifica que exista la fila referenciada; si no, ErrBusinessRule sobre field.
func ensureRef(ctx context.Context, refs repository.ReferenceRepository, kind entity.RefKind, id int64, field string) error {
	ok, err := refs.Exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return missingRef(kind, id, field)
	}
	return nil
}

func missingRef(kind entity.RefKind, id int64, field string) error {
	return domain.FieldError(domain.ErrBusinessRule, field, "no existe "+refLabels[kind]+" con id "+strconv.FormatInt(id, 10))
}

// ensureNonNegative valida montos NUMERIC que no pueden ser negativos.
func ensureNonNegative(v decimal.Decimal, field string) error {
	if v.IsNegative() {
		return domain.FieldError(domain.ErrInvalidInput, field, field+" no puede ser negativo")
	}
	return nil
}

func normalizeName(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
