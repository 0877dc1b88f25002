package repositories

import "errors"

// Errores sentinela de los repositorios
// Los controladores los mapean a 404 con errors.Is
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrContactNotFound  = errors.New("contact not found")
	ErrUserNotFound     = errors.New("user not found")
)
