package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/dvdrental-api/internal/domain"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// Dominios de correo desechable rechazados en el registro.
var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"tempmail.org":      {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"throwaway.email":   {},
	"temp-mail.org":     {},
}

// ValidatePasswordStrength aplica las reglas de fortaleza en orden y devuelve la primera que falla
// como error ErrWeakPassword con el detalle.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.FieldError(domain.ErrWeakPassword, "password", "la contraseña debe tener al menos 8 caracteres")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			special = true
		}
	}
	switch {
	case !upper:
		return domain.FieldError(domain.ErrWeakPassword, "password", "la contraseña debe contener al menos una letra mayúscula")
	case !lower:
		return domain.FieldError(domain.ErrWeakPassword, "password", "la contraseña debe contener al menos una letra minúscula")
	case !digit:
		return domain.FieldError(domain.ErrWeakPassword, "password", "la contraseña debe contener al menos un número")
	case !special:
		return domain.FieldError(domain.ErrWeakPassword, "password", "la contraseña debe contener al menos un carácter especial "+passwordSpecialChars)
	}
	return nil
}

// NormalizeUsername aplica NFKC para que variantes Unicode equivalentes colisionen en la unicidad.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

// NormalizeEmail recorta espacios y pasa el dominio a minúsculas.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// IsDisposableEmail indica si el dominio del email es de correo desechable.
func IsDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	_, ok := disposableDomains[strings.ToLower(email[at+1:])]
	return ok
}
