package repositories

import (
	"errors"

	"gorm.io/gorm"

	"properties-api/domain"
)

// UserRepository define la interfaz del repositorio de usuarios
// Los usuarios viven en MySQL, separados de los documentos del negocio
type UserRepository interface {
	Create(user *domain.User) error
	GetByID(id uint) (*domain.User, error)
	GetByEmail(email string) (*domain.User, error)
	GetByIDs(ids []uint) ([]domain.User, error)
	Count() (int64, error)
}

// userRepository es la implementación real del repositorio
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository crea una nueva instancia del repositorio
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserta un usuario nuevo
func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// GetByID busca un usuario por su ID
func (r *userRepository) GetByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail busca un usuario por su email
// Se usa en el login
func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDs busca varios usuarios de una vez
// Se usa para resolver las referencias débiles (assignedTo, repliedBy)
func (r *userRepository) GetByIDs(ids []uint) ([]domain.User, error) {
	var users []domain.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Count cuenta los usuarios registrados
// Se usa al arrancar para decidir si hay que sembrar el admin inicial
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}
