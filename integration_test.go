package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/helpsoluciones/crm-api/tests/testutil"
)

// setupRouter builds the full application router against an in-memory
// database, exactly as main wires it
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	router := gin.New()
	registerRoutes(router, cfg)
	return router
}

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "HELP SOLUCIONES CRM API is running", response["message"])
}

// TestProtectedRoutesRequireToken verifies that business routes sit
// behind the session middleware
func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter(t)

	protected := []string{
		"/api/v1/clients",
		"/api/v1/quotes",
		"/api/v1/dispatches",
		"/api/v1/users",
		"/api/v1/notifications",
		"/api/v1/reports/dashboard",
	}
	for _, path := range protected {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s should require a token", path)
	}
}

// TestLoginRouteIsPublic verifies that authentication does not gate itself
func TestLoginRouteIsPublic(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("POST", "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Bad request (no body), not unauthorized: the route itself is open
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestUnknownRoute verifies unrouted paths return 404
func TestUnknownRoute(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/no-such-thing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
