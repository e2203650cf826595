// Package validation valida DTOs con go-playground/validator v10 usando una instancia única.
// Los errores se traducen a mensajes por campo (nombre JSON del campo) para el cuerpo de error HTTP.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// RequestValidationError agrupa los errores de validación por campo.
type RequestValidationError struct {
	Fields map[string]string
}

// Error devuelve los mensajes concatenados.
func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validación fallida"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Get devuelve la instancia única del validador con las reglas propias registradas.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// nombres de campo = tag json
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidateStruct valida s. Devuelve nil si pasa o *RequestValidationError con un mensaje por campo.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{Fields: map[string]string{"non_field_errors": err.Error()}}
	}

	out := &RequestValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "este campo es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return "no coincide con " + fe.Param()
	case "username":
		return "solo puede contener letras, números y guion bajo"
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}
