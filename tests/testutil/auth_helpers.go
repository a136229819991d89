package testutil

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/helpsoluciones/crm-api/middleware"
)

// MockClaims creates session claims for testing
func MockClaims(userID, nombre, rol string, permisos []string) *middleware.SessionClaims {
	return &middleware.SessionClaims{
		Nombre:   nombre,
		Rol:      rol,
		Permisos: permisos,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID, nombre, rol string, permisos []string) {
	middleware.SetClaimsForTesting(c, MockClaims(userID, nombre, rol, permisos))
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
