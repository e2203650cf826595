package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/pkg/validation"
)

// parseBody decodifica el JSON y aplica las reglas validate del DTO.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	if verr := validation.ValidateStruct(out); verr != nil {
		return verr
	}
	return nil
}

// paramID lee un id entero positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.FieldError(domain.ErrInvalidInput, name, "debe ser un entero positivo")
	}
	return id, nil
}

// queryInt entero opcional de la query string; nil si no viene.
func queryInt(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &validation.RequestValidationError{Fields: map[string]string{name: "debe ser un número entero"}}
	}
	return &n, nil
}

// queryNonNegative entero opcional que no admite valores negativos.
func queryNonNegative(c *fiber.Ctx, name string) (*int, error) {
	n, err := queryInt(c, name)
	if err != nil {
		return nil, err
	}
	if n != nil && *n < 0 {
		return nil, &validation.RequestValidationError{Fields: map[string]string{name: "debe ser un entero no negativo"}}
	}
	return n, nil
}

// queryID filtro por id opcional (0 = sin filtro).
func queryID(c *fiber.Ctx, name string) (int64, error) {
	n, err := queryInt(c, name)
	if err != nil || n == nil {
		return 0, err
	}
	return int64(*n), nil
}

func pageRequest(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	page, err := queryInt(c, "page")
	if err != nil {
		return p, err
	}
	size, err := queryInt(c, "page_size")
	if err != nil {
		return p, err
	}
	if page != nil {
		if *page > dto.MaxPage {
			return p, &validation.RequestValidationError{Fields: map[string]string{"page": "página fuera de rango"}}
		}
		p.Page = *page
	}
	if size != nil {
		p.PageSize = *size
	}
	p.Normalize()
	return p, nil
}
