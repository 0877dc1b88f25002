package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"properties-api/dto"
	"properties-api/services"
)

// UserController maneja los endpoints HTTP de autenticación
type UserController struct {
	service services.UserService
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Login maneja POST /api/auth/login
// Este es el endpoint más importante: autentica al usuario
func (ctrl *UserController) Login(c *gin.Context) {
	// 1. Leer el JSON del body
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "email and password are required",
		})
		return
	}

	// 2. Llamar al servicio para hacer login
	// El servicio valida la contraseña y genera el JWT
	response, err := ctrl.service.Login(req)
	if err != nil {
		// Credenciales incorrectas -> 401, siempre el mismo mensaje
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Response{
				Success: false,
				Message: "invalid credentials",
			})
			return
		}
		respondError(c, err)
		return
	}

	// 3. Devolver el token JWT y los datos del usuario
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: response})
}

// Register maneja POST /api/auth/register
// Solo un admin puede dar de alta cuentas del personal
func (ctrl *UserController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "name, email and password are required",
		})
		return
	}

	user, err := ctrl.service.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Data:    user,
		Message: "User registered successfully",
	})
}

// Me maneja GET /api/auth/me
// Devuelve el usuario autenticado según el token
func (ctrl *UserController) Me(c *gin.Context) {
	idValue, _ := c.Get("user_id")
	id, _ := idValue.(uint)

	user, err := ctrl.service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: user})
}

// HealthCheck maneja GET /api/health
// Endpoint simple para verificar que el servicio está corriendo
func (ctrl *UserController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "properties-api",
	})
}
