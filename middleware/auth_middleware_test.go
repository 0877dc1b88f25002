package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"properties-api/domain"
	"properties-api/utils"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	staff := router.Group("/staff")
	staff.Use(AuthMiddleware(), RequireRoles(domain.RoleAdmin, domain.RoleAgent))
	staff.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(), RequireRoles(domain.RoleAdmin))
	admin.DELETE("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// Test: Sin header de autorización -> 401
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/staff/ping", "")

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", recorder.Code)
	}
}

// Test: Header mal formado -> 401
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/staff/ping", nil)
	req.Header.Set("Authorization", "Basic abc123")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", recorder.Code)
	}
}

// Test: Token inválido -> 401
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/staff/ping", "not-a-real-token")

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", recorder.Code)
	}
}

// Test: Token válido de agent pasa las rutas de staff
func TestAuthMiddleware_ValidAgentToken(t *testing.T) {
	router := newTestRouter()

	token, err := utils.GenerateToken(2, domain.RoleAgent)
	if err != nil {
		t.Fatalf("Expected no error generating token, got %v", err)
	}

	recorder := doRequest(router, http.MethodGet, "/staff/ping", token)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", recorder.Code)
	}
}

// Test: Un agent no puede entrar a rutas solo-admin -> 403
func TestRequireRoles_AgentForbiddenOnAdminRoute(t *testing.T) {
	router := newTestRouter()

	token, err := utils.GenerateToken(2, domain.RoleAgent)
	if err != nil {
		t.Fatalf("Expected no error generating token, got %v", err)
	}

	recorder := doRequest(router, http.MethodDelete, "/admin/ping", token)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", recorder.Code)
	}
}

// Test: Un admin sí puede
func TestRequireRoles_AdminAllowed(t *testing.T) {
	router := newTestRouter()

	token, err := utils.GenerateToken(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Expected no error generating token, got %v", err)
	}

	recorder := doRequest(router, http.MethodDelete, "/admin/ping", token)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", recorder.Code)
	}
}
