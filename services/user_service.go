package services

import (
	"errors"
	"log"
	"strings"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/repositories"
	"properties-api/utils"
)

// ErrInvalidCredentials es el error genérico del login
// Por seguridad no se distingue "email inexistente" de "password incorrecto"
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService define la interfaz del servicio de usuarios
type UserService interface {
	Register(req dto.RegisterRequest) (*domain.User, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetByID(id uint) (*domain.User, error)
	SeedAdmin(name, email, password string) error
}

// userService es la implementación real del servicio
type userService struct {
	repo repositories.UserRepository
}

// NewUserService crea una nueva instancia del servicio
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register da de alta una cuenta del personal
// La ruta está protegida: solo un admin llega hasta acá
func (s *userService) Register(req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Verificar que el email no esté en uso
	existing, _ := s.repo.GetByEmail(email)
	if existing != nil {
		return nil, NewValidationError("email already exists")
	}

	// 2. Rol: agent por defecto
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleAgent
	} else if !role.IsValid() {
		return nil, NewValidationError("role must be one of: admin, agent")
	}

	// 3. Hashear la contraseña, nunca se guarda en texto plano
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login autentica un usuario y genera el token JWT
func (s *userService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: *user}, nil
}

// GetByID obtiene un usuario por su ID
func (s *userService) GetByID(id uint) (*domain.User, error) {
	return s.repo.GetByID(id)
}

// SeedAdmin crea el admin inicial cuando la tabla está vacía
// Se llama al arrancar con las credenciales de las variables de entorno
func (s *userService) SeedAdmin(name, email, password string) error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if email == "" || password == "" {
		log.Println("No users exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set, skipping admin seed")
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hashedPassword,
		Role:     domain.RoleAdmin,
	}
	if err := s.repo.Create(admin); err != nil {
		return err
	}

	log.Printf("Seeded initial admin account: %s", admin.Email)
	return nil
}
