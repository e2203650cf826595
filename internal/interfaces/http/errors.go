package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/pkg/validation"
)

var errInvalidBody = errors.New("cuerpo inválido")

type errorMapping struct {
	kind   error
	status int
	code   string
}

// errorTable orden de evaluación de errors.Is: los sentinels más específicos primero.
var errorTable = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserAlreadyExists, fiber.StatusBadRequest, "USER_EXISTS"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrBusinessRule, fiber.StatusBadRequest, "BUSINESS_RULE"},
	{domain.ErrAccountNotActivated, fiber.StatusBadRequest, "ACCOUNT_NOT_ACTIVATED"},
	{domain.ErrAccountAlreadyActive, fiber.StatusBadRequest, "ACCOUNT_ALREADY_ACTIVE"},
	{domain.ErrTokenExpired, fiber.StatusBadRequest, "TOKEN_EXPIRED"},
	{domain.ErrInvalidToken, fiber.StatusBadRequest, "INVALID_TOKEN"},
	{domain.ErrWeakPassword, fiber.StatusBadRequest, "WEAK_PASSWORD"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrEmailSending, fiber.StatusInternalServerError, "EMAIL_SENDING"},
}

// respondError traduce cualquier error de la capa de aplicación a la respuesta HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos de entrada inválidos", Fields: verr.Fields,
		})
	}
	if errors.Is(err, errInvalidBody) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	for _, m := range errorTable {
		if !errors.Is(err, m.kind) {
			continue
		}
		body := dto.ErrorResponse{Code: m.code, Message: err.Error()}
		var derr *domain.Error
		if errors.As(err, &derr) && derr.Field != "" {
			body.Fields = map[string]string{derr.Field: derr.Detail}
			if m.kind == domain.ErrInvalidInput {
				body.Code = "VALIDATION"
			}
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error de servidor")
		}
		return c.Status(m.status).JSON(body)
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, métodos no permitidos y errores no atendidos.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code := "HTTP_ERROR"
		switch ferr.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusTooManyRequests:
			code = "TOO_MANY_REQUESTS"
		}
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: code, Message: ferr.Message})
	}
	return respondError(c, err)
}
