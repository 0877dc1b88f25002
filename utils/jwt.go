package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"properties-api/domain"
)

// Claims es la estructura de los datos que guardamos EN el token
// Cuando el usuario hace login, le damos un token con esta info
type Claims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// getJWTSecret obtiene el secret desde variables de entorno
// Se lee en cada llamada porque godotenv.Load corre en main,
// después de que este paquete se inicializa
func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken genera un nuevo JWT token para un usuario
// Se llama después del login exitoso
func GenerateToken(userID uint, role domain.Role) (string, error) {
	// El token expira en 24 horas
	expirationTime := time.Now().Add(24 * time.Hour)

	// Creamos los "claims" (datos que va a tener el token)
	claims := &Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// Creamos el token y lo firmamos con nuestro secret
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

// ValidateToken valida un JWT token y retorna los claims
// Se usa en el middleware para verificar que el usuario esté autenticado
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	// Parseamos el token y verificamos la firma
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
