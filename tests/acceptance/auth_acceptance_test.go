package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/helpsoluciones/crm-api/controllers"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/tests/testutil"
)

// AuthAcceptanceTestSuite walks the login flow the frontend performs on
// startup: authenticate, then fetch the session user from /auth/me.
type AuthAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
}

func (s *AuthAcceptanceTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testutil.SetupTestConfig(s.T())
	s.db = testutil.SetupTestDB(s.T())

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", controllers.Login)
	authed := v1.Group("", middleware.EnsureValidToken(cfg))
	authed.GET("/auth/me", controllers.GetMe)
	s.server = httptest.NewServer(router)

	admin := models.User{
		Nombre:   "Carlos Mejia",
		Usuario:  "cmejia",
		Cargo:    "Gerente",
		Rol:      models.RoleAdmin,
		Permisos: []string{"clientes", "cotizaciones"},
	}
	s.Require().NoError(admin.SetPassword("admin12345"))
	s.Require().NoError(s.db.Create(&admin).Error)
}

func (s *AuthAcceptanceTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *AuthAcceptanceTestSuite) postLogin(usuario, password string) *http.Response {
	body, _ := json.Marshal(map[string]string{"usuario": usuario, "password": password})
	resp, err := http.Post(s.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *AuthAcceptanceTestSuite) TestLoginThenFetchSessionUser() {
	resp := s.postLogin("cmejia", "admin12345")
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var login struct {
		Success bool `json:"success"`
		Data    struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&login))
	assert.True(s.T(), login.Success)
	assert.NotEmpty(s.T(), login.Data.Token)
	assert.Equal(s.T(), "Carlos Mejia", login.Data.User.Nombre)
	assert.Empty(s.T(), login.Data.User.PasswordHash)

	req, err := http.NewRequest("GET", s.server.URL+"/api/v1/auth/me", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+login.Data.Token)
	meResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer meResp.Body.Close()
	s.Require().Equal(http.StatusOK, meResp.StatusCode)

	var me struct {
		Data models.User `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(s.T(), "cmejia", me.Data.Usuario)
	assert.Equal(s.T(), models.RoleAdmin, me.Data.Rol)
}

func (s *AuthAcceptanceTestSuite) TestLoginIsCaseInsensitiveOnUsername() {
	resp := s.postLogin("CMejia", "admin12345")
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
}

func (s *AuthAcceptanceTestSuite) TestLoginRejectsWrongPassword() {
	resp := s.postLogin("cmejia", "not-the-password")
	defer resp.Body.Close()
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

	var parsed struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&parsed))
	assert.False(s.T(), parsed.Success)
	assert.Equal(s.T(), "INVALID_CREDENTIALS", parsed.Error.Code)
}

func (s *AuthAcceptanceTestSuite) TestProtectedRouteWithoutToken() {
	resp, err := http.Get(s.server.URL + "/api/v1/auth/me")
	s.Require().NoError(err)
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthAcceptanceTestSuite))
}
