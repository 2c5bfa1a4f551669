package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrBatchArchived = errors.New("el lote está archivado y no admite más operaciones")
)

// ValidationError describe una entrada malformada o fuera de rango. Message es
// apto para mostrar al usuario e incluye el rango válido cuando aplica.
// Siempre recuperable: el caller corrige la entrada y reintenta.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation construye un ValidationError con mensaje formateado.
func NewValidation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation extrae el ValidationError de err, si lo envuelve.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
