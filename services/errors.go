package services

import "strings"

// ValidationError acumula los errores de campo de una entidad
// Los controladores lo mapean a 400 con errors.As
type ValidationError struct {
	Fields []string
}

// Error implementa la interfaz error
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Add agrega un error de campo
func (e *ValidationError) Add(msg string) {
	e.Fields = append(e.Fields, msg)
}

// OrNil devuelve nil cuando no se acumuló ningún error
// Devolver el puntero tipado directamente rompería los checks err != nil
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError crea un error con un único mensaje de campo
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Fields: []string{msg}}
}
