package services

import (
	"errors"
	"testing"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/repositories"
)

// ============================================
// MOCK del repositorio de usuarios
// ============================================

type mockUserRepository struct {
	users map[uint]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uint]*domain.User)}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	// Simular auto-increment del ID
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(id uint) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ids []uint) ([]domain.User, error) {
	results := []domain.User{}
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			results = append(results, *user)
		}
	}
	return results, nil
}

func (m *mockUserRepository) Count() (int64, error) {
	return int64(len(m.users)), nil
}

// ============================================
// TESTS
// ============================================

// Test: Registrar usuario con rol agent por defecto
func TestRegister_Success(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{
		Name:     "Test Agent",
		Email:    "Agent@Example.com",
		Password: "password123",
	}

	user, err := service.Register(req)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Role != domain.RoleAgent {
		t.Errorf("Expected role agent, got %s", user.Role)
	}
	if user.Email != "agent@example.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}
	// Verificar que la contraseña fue hasheada (no es la original)
	if user.Password == req.Password {
		t.Error("Password should be hashed, not plain text")
	}
}

// Test: Error al registrar con email duplicado
func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	req := dto.RegisterRequest{Name: "Test", Email: "test@example.com", Password: "password123"}
	if _, err := service.Register(req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, err := service.Register(req)

	if user != nil {
		t.Error("Expected nil user, got user")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

// Test: Rol inválido rechazado
func TestRegister_InvalidRole(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	_, err := service.Register(dto.RegisterRequest{
		Name:     "Test",
		Email:    "test@example.com",
		Password: "password123",
		Role:     "superuser",
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

// Test: Login exitoso devuelve token y usuario
func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	service.Register(dto.RegisterRequest{Name: "Test", Email: "test@example.com", Password: "password123"})

	response, err := service.Login(dto.LoginRequest{Email: "test@example.com", Password: "password123"})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if response.Token == "" {
		t.Error("Expected a JWT token, got empty string")
	}
	if response.User.Email != "test@example.com" {
		t.Errorf("Expected user email test@example.com, got %s", response.User.Email)
	}
}

// Test: Contraseña incorrecta devuelve el error genérico
func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	service.Register(dto.RegisterRequest{Name: "Test", Email: "test@example.com", Password: "password123"})

	_, err := service.Login(dto.LoginRequest{Email: "test@example.com", Password: "wrongpass"})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// Test: Email inexistente devuelve el MISMO error genérico
func TestLogin_UnknownEmail(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	_, err := service.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// Test: El admin inicial solo se crea con la tabla vacía
func TestSeedAdmin_OnlyWhenEmpty(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	if err := service.SeedAdmin("Admin", "admin@example.com", "adminpass"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(repo.users))
	}
	if repo.users[1].Role != domain.RoleAdmin {
		t.Errorf("Expected role admin, got %s", repo.users[1].Role)
	}

	// Con usuarios existentes no se crea otro
	if err := service.SeedAdmin("Admin", "other@example.com", "adminpass"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected still 1 user, got %d", len(repo.users))
	}
}

// Test: Sin credenciales configuradas no se crea nada
func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	if err := service.SeedAdmin("Admin", "", ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Errorf("Expected no users, got %d", len(repo.users))
	}
}
