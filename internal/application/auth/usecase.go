package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
	"github.com/jhoicas/dvdrental-api/pkg/jwt"
)

// Config secretos, vigencias y datos de los enlaces enviados por correo.
type Config struct {
	Secret              string
	Issuer              string
	AccessTTL           time.Duration
	RefreshTTL          time.Duration
	ActivationMaxAge    time.Duration
	PasswordResetMaxAge time.Duration
	FrontendURL         string
	SiteName            string
	BcryptCost          int // 0 = bcrypt.DefaultCost
}

// AuthUseCase casos de uso de autenticación: registro, activación, login, reset de contraseña y refresh.
type AuthUseCase struct {
	users  repository.UserRepository
	tx     ports.TxRunner
	mailer ports.Mailer
	cfg    Config
	log    zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, tx ports.TxRunner, mailer ports.Mailer, cfg Config, log zerolog.Logger) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{users: users, tx: tx, mailer: mailer, cfg: cfg, log: log}
}

// Register crea la cuenta inactiva y envía el correo de activación dentro de la misma transacción:
// si el correo falla no queda ningún usuario creado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := NormalizeUsername(in.Username)
	email := NormalizeEmail(in.Email)

	if in.Password != in.ConfirmPassword {
		return nil, domain.FieldError(domain.ErrInvalidInput, "confirm_password", "las contraseñas no coinciden")
	}
	if IsDisposableEmail(email) {
		return nil, domain.FieldError(domain.ErrInvalidInput, "email", "usa un email válido (no se permiten dominios desechables)")
	}

	exists, err := uc.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Errorf(domain.ErrUserAlreadyExists, "ya existe un usuario con ese username")
	}
	exists, err = uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Errorf(domain.ErrUserAlreadyExists, "ya existe un usuario con ese email")
	}
	if err := ValidatePasswordStrength(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         entity.RoleCustomer,
		IsActive:     false,
		DateJoined:   now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(tx ports.Repos) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		token, err := uc.activationToken(user)
		if err != nil {
			return err
		}
		if err := uc.mailer.Send(ctx, uc.activationMail(user, token)); err != nil {
			uc.log.Error().Err(err).Str("email", user.Email).Msg("envío de correo de activación")
			return domain.Errorf(domain.ErrEmailSending, "no se pudo enviar el correo de activación, intenta más tarde")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: "Usuario registrado. Revisa tu correo para activar la cuenta.",
		User:    toUserResponse(user),
	}, nil
}

// Activate activa la cuenta del token y devuelve el par de tokens para iniciar sesión directamente.
func (uc *AuthUseCase) Activate(ctx context.Context, token string) (*dto.TokenResponse, error) {
	user, err := uc.resolveActionToken(ctx, uc.users, token, activationSalt, tokenTypeActivation)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, domain.ErrAccountAlreadyActive
	}
	if err := uc.users.SetActive(ctx, user.ID, true); err != nil {
		return nil, err
	}
	user.IsActive = true

	access, refresh, err := uc.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Message: "Cuenta activada correctamente.",
		Access:  access,
		Refresh: refresh,
		User:    toUserResponse(user),
	}, nil
}

// Login acepta username o email. Una cuenta existente sin activar se informa antes de validar la contraseña.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.findByLogin(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user != nil && !user.IsActive {
		return nil, domain.ErrAccountNotActivated
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "usuario o contraseña inválidos")
	}

	now := time.Now()
	if err := uc.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	access, refresh, err := uc.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Access: access, Refresh: refresh, User: toUserResponse(user)}, nil
}

func (uc *AuthUseCase) findByLogin(ctx context.Context, login string) (*entity.User, error) {
	user, err := uc.users.GetByUsername(ctx, NormalizeUsername(login))
	if err != nil || user != nil {
		return user, err
	}
	if strings.Contains(login, "@") {
		return uc.users.GetByEmail(ctx, NormalizeEmail(login))
	}
	return nil, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := toUserResponse(user)
	return &out, nil
}

// RequestPasswordReset envía el enlace de restablecimiento. Un email desconocido no produce error
// para no revelar qué cuentas existen.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Msg("reset solicitado para email inexistente")
		return nil
	}
	token, err := uc.passwordResetToken(user)
	if err != nil {
		return err
	}
	if err := uc.mailer.Send(ctx, uc.passwordResetMail(user, token)); err != nil {
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("envío de correo de reset")
		return domain.Errorf(domain.ErrEmailSending, "no se pudo enviar el correo de restablecimiento de contraseña")
	}
	return nil
}

// ConfirmPasswordReset valida el token y guarda la nueva contraseña, que debe ser distinta de la actual.
func (uc *AuthUseCase) ConfirmPasswordReset(ctx context.Context, in dto.PasswordResetConfirmRequest) error {
	if in.NewPassword != in.ConfirmPassword {
		return domain.FieldError(domain.ErrInvalidInput, "confirm_password", "las contraseñas no coinciden")
	}
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		user, err := uc.resolveActionToken(ctx, tx.Users, in.Token, passwordResetSalt, tokenTypePasswordReset)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.NewPassword)) == nil {
			return domain.FieldError(domain.ErrInvalidInput, "new_password", "la nueva contraseña debe ser distinta de la actual")
		}
		if err := ValidatePasswordStrength(in.NewPassword); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.cfg.BcryptCost)
		if err != nil {
			return err
		}
		return tx.Users.UpdatePassword(ctx, user.ID, string(hash))
	})
}

// Refresh emite un access token nuevo a partir de un refresh token válido de un usuario activo.
func (uc *AuthUseCase) Refresh(ctx context.Context, refresh string) (*dto.AccessResponse, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, refresh)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != jwt.TypeRefresh {
		return nil, domain.Errorf(domain.ErrInvalidToken, "se esperaba un refresh token")
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrAccountNotActivated
	}
	sub := jwt.Subject{UserID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
	access, err := jwt.Generate(uc.cfg.Secret, uc.cfg.Issuer, jwt.TypeAccess, sub, uc.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AccessResponse{Access: access}, nil
}

// CreateUser alta directa de un usuario activo con el rol indicado (bootstrap de administradores).
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.FieldError(domain.ErrInvalidInput, "role", "rol inválido")
	}
	if err := ValidatePasswordStrength(in.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Username:     NormalizeUsername(in.Username),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
		LastLogin:  u.LastLogin,
	}
}
