package domain

import "time"

// Role define los roles del personal de la inmobiliaria
type Role string

const (
	RoleAdmin Role = "admin" // Administrador: acceso total
	RoleAgent Role = "agent" // Agente: gestiona propiedades e interesados
)

// IsValid verifica que el rol sea uno de los permitidos
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAgent
}

// User representa una cuenta del personal
// A diferencia de las propiedades y consultas, los usuarios viven en MySQL
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `gorm:"not null" json:"-"` // El "-" oculta el hash en JSON
	Role      Role      `gorm:"type:varchar(20);default:'agent'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName especifica el nombre de la tabla en MySQL
func (User) TableName() string {
	return "users"
}
