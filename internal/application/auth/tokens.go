package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/dvdrental-api/internal/domain"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
	"github.com/jhoicas/dvdrental-api/internal/domain/repository"
	"github.com/jhoicas/dvdrental-api/pkg/jwt"
)

// Sales y tipos de los tokens de un solo propósito.
const (
	activationSalt    = "activation-token"
	passwordResetSalt = "password-reset-token"

	tokenTypeActivation    = "activation"
	tokenTypePasswordReset = "password_reset"
)

func (uc *AuthUseCase) activationToken(u *entity.User) (string, error) {
	return jwt.SignAction(uc.cfg.Secret, activationSalt, tokenTypeActivation, u.ID, u.Username, uc.cfg.ActivationMaxAge)
}

func (uc *AuthUseCase) passwordResetToken(u *entity.User) (string, error) {
	return jwt.SignAction(uc.cfg.Secret, passwordResetSalt, tokenTypePasswordReset, u.ID, u.Username, uc.cfg.PasswordResetMaxAge)
}

// resolveActionToken valida firma, expiración y tipo, y carga el usuario por id y username.
func (uc *AuthUseCase) resolveActionToken(ctx context.Context, users repository.UserRepository, token, salt, tokenType string) (*entity.User, error) {
	claims, err := jwt.ParseAction(uc.cfg.Secret, salt, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != tokenType {
		return nil, domain.Errorf(domain.ErrInvalidToken, "tipo de token inválido")
	}
	user, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Username != claims.Username {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// issueTokens genera el par access/refresh del usuario.
func (uc *AuthUseCase) issueTokens(u *entity.User) (access, refresh string, err error) {
	sub := jwt.Subject{UserID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
	access, err = jwt.Generate(uc.cfg.Secret, uc.cfg.Issuer, jwt.TypeAccess, sub, uc.cfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = jwt.Generate(uc.cfg.Secret, uc.cfg.Issuer, jwt.TypeRefresh, sub, uc.cfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
