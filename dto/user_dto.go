package dto

import "properties-api/domain"

// RegisterRequest representa el alta de una cuenta del personal
// Solo un administrador puede dar de alta cuentas
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"` // "admin" o "agent", por defecto agent
}

// LoginRequest representa el request de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa la respuesta del login
// Devuelve el token JWT y los datos del usuario
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
