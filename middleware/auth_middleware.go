package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"properties-api/domain"
	"properties-api/utils"
)

// AuthMiddleware valida el JWT token en cada request
// Si el token es válido, permite continuar
// Si no, devuelve error 401 (Unauthorized)
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obtener el header "Authorization"
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization header required",
			})
			c.Abort() // Detiene la ejecución
			return
		}

		// Formato esperado: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validar el token
		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			c.Abort()
			return
		}

		// Guardar la info del usuario en el contexto
		// Así los endpoints pueden saber quién hizo la request
		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)

		c.Next() // Continúa con el endpoint
	}
}

// RequireRoles valida que el usuario tenga alguno de los roles indicados
// Este middleware se usa DESPUÉS de AuthMiddleware
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "user role not found",
			})
			c.Abort()
			return
		}

		role, _ := roleValue.(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient privileges",
		})
		c.Abort()
	}
}
