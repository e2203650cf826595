package auth_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dvdrental-api/internal/application/auth"
	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/memory"
	"github.com/jhoicas/dvdrental-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "Secreta#2024"
)

type captureMailer struct {
	sent []ports.Mail
	err  error
}

func (m *captureMailer) Send(_ context.Context, mail ports.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

// tokenFromMail extrae el parámetro token del enlace del correo.
func tokenFromMail(t *testing.T, m ports.Mail) string {
	t.Helper()
	for _, line := range strings.Split(m.Body, "\n") {
		if strings.HasPrefix(line, "http") {
			u, err := url.Parse(strings.TrimSpace(line))
			require.NoError(t, err)
			return u.Query().Get("token")
		}
	}
	t.Fatal("el correo no contiene enlace")
	return ""
}

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store, *captureMailer) {
	t.Helper()
	store := memory.NewStore()
	mailer := &captureMailer{}
	uc := auth.NewAuthUseCase(store.Repos().Users, store, mailer, auth.Config{
		Secret:              testSecret,
		Issuer:              "dvdrental-test",
		AccessTTL:           time.Hour,
		RefreshTTL:          24 * time.Hour,
		ActivationMaxAge:    7 * 24 * time.Hour,
		PasswordResetMaxAge: 24 * time.Hour,
		FrontendURL:         "http://front.local",
		SiteName:            "DVD Rental",
		BcryptCost:          bcrypt.MinCost,
	}, zerolog.Nop())
	return uc, store, mailer
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:        "mary_smith",
		Email:           "mary@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		FirstName:       "Mary",
	}
}

// registerAndActivate deja un usuario activo listo para login.
func registerAndActivate(t *testing.T, uc *auth.AuthUseCase, mailer *captureMailer) {
	t.Helper()
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	_, err = uc.Activate(context.Background(), tokenFromMail(t, mailer.sent[len(mailer.sent)-1]))
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y activación
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioInactivoYEnviaCorreo(t *testing.T) {
	uc, _, mailer := newUseCase(t)

	out, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.False(t, out.User.IsActive, "la cuenta nueva debe quedar inactiva")
	assert.Equal(t, "customer", out.User.Role)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "mary@example.com", mailer.sent[0].To)
	assert.Equal(t, "Activa tu cuenta de DVD Rental", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "Hola Mary")
	assert.Contains(t, mailer.sent[0].Body, "http://front.local/activate?token=")
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	in := registerRequest()
	in.Email = "otra@example.com"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	in := registerRequest()
	in.Username = "otro_usuario"
	in.Email = "mary@EXAMPLE.com"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegister_PasswordDebil(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	in := registerRequest()
	in.Password, in.ConfirmPassword = "sinmayusculas1!", "sinmayusculas1!"

	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	assert.Empty(t, mailer.sent)
}

func TestRegister_DominioDesechable(t *testing.T) {
	uc, _, _ := newUseCase(t)
	in := registerRequest()
	in.Email = "x@mailinator.com"

	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_FalloDeCorreoRevierteAlta(t *testing.T) {
	uc, store, mailer := newUseCase(t)
	mailer.err = errors.New("smtp caído")

	_, err := uc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailSending)

	exists, err := store.Repos().Users.ExistsByUsername(context.Background(), "mary_smith")
	require.NoError(t, err)
	assert.False(t, exists, "el usuario no debe persistir si el correo falla")
}

func TestActivate_DevuelveTokensYActiva(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	out, err := uc.Activate(context.Background(), tokenFromMail(t, mailer.sent[0]))
	require.NoError(t, err)
	assert.True(t, out.User.IsActive)
	assert.NotEmpty(t, out.Access)
	assert.NotEmpty(t, out.Refresh)

	claims, err := jwt.Parse(testSecret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeAccess, claims.TokenType)
	assert.Equal(t, "customer", claims.Role)
}

func TestActivate_CuentaYaActiva(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)

	_, err := uc.Activate(context.Background(), tokenFromMail(t, mailer.sent[0]))
	assert.ErrorIs(t, err, domain.ErrAccountAlreadyActive)
}

func TestActivate_TokenInvalido(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Activate(context.Background(), "no-es-un-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestActivate_TokenExpirado(t *testing.T) {
	uc, _, _ := newUseCase(t)
	tok, err := jwt.SignAction(testSecret, "activation-token", "activation", 1, "mary_smith", -time.Minute)
	require.NoError(t, err)

	_, err = uc.Activate(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestActivate_TipoIncorrecto(t *testing.T) {
	uc, _, _ := newUseCase(t)
	tok, err := jwt.SignAction(testSecret, "activation-token", "password_reset", 1, "mary_smith", time.Hour)
	require.NoError(t, err)

	_, err = uc.Activate(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestActivate_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newUseCase(t)
	tok, err := jwt.SignAction(testSecret, "activation-token", "activation", 999, "nadie", time.Hour)
	require.NoError(t, err)

	_, err = uc.Activate(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login, me y refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CuentaNoActivada(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrAccountNotActivated)
}

func TestLogin_PorUsernameYPorEmail(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "mary_smith", out.User.Username)
	assert.NotNil(t, out.User.LastLogin)

	out, err = uc.Login(context.Background(), dto.LoginRequest{Username: "mary@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: "Incorrecta#1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)
	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: testPassword})
	require.NoError(t, err)

	me, err := uc.Me(context.Background(), login.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", me.Email)

	_, err = uc.Me(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRefresh(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)
	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: testPassword})
	require.NoError(t, err)

	out, err := uc.Refresh(context.Background(), login.Refresh)
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, jwt.TypeAccess, claims.TokenType)

	_, err = uc.Refresh(context.Background(), login.Access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "un access token no sirve para refrescar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reset de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_EmailDesconocidoNoFalla(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	require.NoError(t, uc.RequestPasswordReset(context.Background(), "nadie@example.com"))
	assert.Empty(t, mailer.sent)
}

func TestPasswordReset_FlujoCompleto(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)

	require.NoError(t, uc.RequestPasswordReset(context.Background(), "mary@example.com"))
	resetMail := mailer.sent[len(mailer.sent)-1]
	assert.Contains(t, resetMail.Body, "http://front.local/reset-password?token=")
	token := tokenFromMail(t, resetMail)

	err := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirmRequest{
		Token: token, NewPassword: testPassword, ConfirmPassword: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la nueva contraseña debe ser distinta")

	err = uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirmRequest{
		Token: token, NewPassword: "debil", ConfirmPassword: "debil",
	})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	const nueva = "OtraClave!99"
	require.NoError(t, uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirmRequest{
		Token: token, NewPassword: nueva, ConfirmPassword: nueva,
	}))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "mary_smith", Password: nueva})
	assert.NoError(t, err)
}

func TestPasswordReset_TokenDeActivacionNoSirve(t *testing.T) {
	uc, _, mailer := newUseCase(t)
	registerAndActivate(t, uc, mailer)
	activationToken := tokenFromMail(t, mailer.sent[0])

	err := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirmRequest{
		Token: activationToken, NewPassword: "OtraClave!99", ConfirmPassword: "OtraClave!99",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestCreateUser_AdminActivo(t *testing.T) {
	uc, _, _ := newUseCase(t)
	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "admin", Email: "admin@example.com", Password: testPassword, Role: "admin",
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)

	_, err = uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "root", Email: "root@example.com", Password: testPassword, Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
