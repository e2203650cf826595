package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	apphttp "github.com/jhoicas/dvdrental-api/internal/interfaces/http"
)

func TestErrorHandler_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no encontrado", domain.NotFound("película", 9), http.StatusNotFound, "NOT_FOUND"},
		{"usuario no encontrado", domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"usuario existente", domain.ErrUserAlreadyExists, http.StatusBadRequest, "USER_EXISTS"},
		{"regla de negocio", domain.Errorf(domain.ErrBusinessRule, "ítem alquilado"), http.StatusBadRequest, "BUSINESS_RULE"},
		{"entrada inválida con campo", domain.FieldError(domain.ErrInvalidInput, "limit", "fuera de rango"), http.StatusBadRequest, "VALIDATION"},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"cuenta no activada", domain.ErrAccountNotActivated, http.StatusBadRequest, "ACCOUNT_NOT_ACTIVATED"},
		{"cuenta ya activa", domain.ErrAccountAlreadyActive, http.StatusBadRequest, "ACCOUNT_ALREADY_ACTIVE"},
		{"token expirado", domain.ErrTokenExpired, http.StatusBadRequest, "TOKEN_EXPIRED"},
		{"token inválido", domain.ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
		{"password débil", domain.ErrWeakPassword, http.StatusBadRequest, "WEAK_PASSWORD"},
		{"credenciales", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"no autorizado", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"conflicto", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"correo", domain.ErrEmailSending, http.StatusInternalServerError, "EMAIL_SENDING"},
		{"envuelto", fmt.Errorf("delete film: %w", domain.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"desconocido", errors.New("pgx: conexión rota"), http.StatusInternalServerError, "INTERNAL"},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorHandler_NoExponeErroresInternos(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("dial tcp 10.0.0.5:5432: refused") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestErrorHandler_CampoEnFields(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.FieldError(domain.ErrBusinessRule, "language_id", "no existe idioma con id 99")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BUSINESS_RULE", body.Code)
	assert.Equal(t, "no existe idioma con id 99", body.Fields["language_id"])
}
