package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrUserAlreadyExists    = errors.New("ya existe un usuario con ese username o email")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrBusinessRule         = errors.New("error de regla de negocio")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrAccountNotActivated  = errors.New("la cuenta no está activada, revisa tu correo para el enlace de activación")
	ErrAccountAlreadyActive = errors.New("la cuenta ya está activada")
	ErrInvalidToken         = errors.New("token inválido o mal formado")
	ErrTokenExpired         = errors.New("el token expiró, solicita uno nuevo")
	ErrWeakPassword         = errors.New("la contraseña no cumple los requisitos de seguridad")
	ErrEmailSending         = errors.New("no se pudo enviar el correo, intenta más tarde")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
)

// Error error de dominio con mensaje para el cliente. Kind es el sentinel que decide el status HTTP.
type Error struct {
	Kind   error
	Detail string
	Field  string // opcional: campo de entrada asociado
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error con mensaje formateado.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// FieldError error de entrada asociado a un campo concreto.
func FieldError(kind error, field, detail string) error {
	return &Error{Kind: kind, Detail: detail, Field: field}
}

// NotFound error 404 con el nombre del recurso.
func NotFound(resource string, id int64) error {
	return Errorf(ErrNotFound, "no se encontró %s con id %d", resource, id)
}
