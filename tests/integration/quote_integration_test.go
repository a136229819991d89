package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
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

// QuoteIntegrationTestSuite drives the quote endpoints through the full
// router, auth middleware included.
type QuoteIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	token  string
	client models.Client
	prod   models.Product
}

func (s *QuoteIntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testutil.SetupTestConfig(s.T())
	s.db = testutil.SetupTestDB(s.T())

	s.router = gin.New()
	v1 := s.router.Group("/api/v1")
	v1.POST("/auth/login", controllers.Login)
	authed := v1.Group("", middleware.EnsureValidToken(cfg))
	quotes := authed.Group("/quotes", middleware.RequireModule("cotizaciones"))
	quotes.GET("", controllers.ListQuotes)
	quotes.POST("", controllers.CreateQuote)
	quotes.PUT("/:id", controllers.UpdateQuote)
	quotes.DELETE("/:id", controllers.DeleteQuote)

	seller := models.User{Nombre: "Maria Lopez", Usuario: "mlopez", Rol: models.RoleSales, Permisos: []string{"cotizaciones"}}
	s.Require().NoError(seller.SetPassword("clave12345"))
	s.Require().NoError(s.db.Create(&seller).Error)

	s.client = models.Client{Nombre: "Industrias Omega", Direccion: "Cra 50 # 12-30"}
	s.Require().NoError(s.db.Create(&s.client).Error)
	s.prod = models.Product{Nombre: "Router WiFi 6", NumPart: "RT-AX55", PrecioCompra: 400}
	s.Require().NoError(s.db.Create(&s.prod).Error)

	body, _ := json.Marshal(map[string]string{"usuario": "mlopez", "password": "clave12345"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)
	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	s.token = parsed.Data.Token
}

func (s *QuoteIntegrationTestSuite) doJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		s.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *QuoteIntegrationTestSuite) TestCreateQuoteComputesTotals() {
	w := s.doJSON("POST", "/api/v1/quotes", map[string]interface{}{
		"clienteId": s.client.ID,
		"ejecutivo": "Maria Lopez",
		"items": []map[string]interface{}{
			{"productoId": s.prod.ID, "cantidad": 2, "costoUnitario": 100, "utilidad": 20, "iva": 19},
			{"productoId": s.prod.ID, "cantidad": 1, "costoUnitario": 50, "utilidad": 10, "iva": 19},
		},
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var parsed struct {
		Data models.Quote `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	q := parsed.Data
	assert.InDelta(s.T(), 295.0, q.Subtotal, 0.001)
	assert.InDelta(s.T(), 56.05, q.IVA, 0.001)
	assert.InDelta(s.T(), 351.05, q.Total, 0.001)
	assert.Regexp(s.T(), regexp.MustCompile(`^HS-\d{4}-\d{3}$`), q.Consecutivo)
	assert.Equal(s.T(), "Industrias Omega", q.ClienteNombre)
	assert.Equal(s.T(), models.QuoteStatusFollowUp, q.Estado)
}

func (s *QuoteIntegrationTestSuite) TestListReturnsOwnQuotesOnly() {
	other := models.Quote{Consecutivo: "HS-2025-900", UsuarioID: "someone-else", Estado: models.QuoteStatusFollowUp}
	s.Require().NoError(s.db.Create(&other).Error)

	w := s.doJSON("POST", "/api/v1/quotes", map[string]interface{}{
		"clienteId": s.client.ID,
		"items":     []map[string]interface{}{{"productoId": s.prod.ID, "cantidad": 1, "costoUnitario": 400, "utilidad": 20, "iva": 19}},
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doJSON("GET", "/api/v1/quotes", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var parsed struct {
		Data []models.Quote `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	s.Require().Len(parsed.Data, 1)
	assert.NotEqual(s.T(), "HS-2025-900", parsed.Data[0].Consecutivo)
}

func (s *QuoteIntegrationTestSuite) TestMarkLostLeavesNoDispatch() {
	w := s.doJSON("POST", "/api/v1/quotes", map[string]interface{}{
		"clienteId": s.client.ID,
		"items":     []map[string]interface{}{{"productoId": s.prod.ID, "cantidad": 1, "costoUnitario": 400, "utilidad": 20, "iva": 19}},
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		Data models.Quote `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	quote := created.Data
	quote.Estado = models.QuoteStatusLost
	w = s.doJSON("PUT", fmt.Sprintf("/api/v1/quotes/%s", quote.ID), quote)
	s.Require().Equal(http.StatusOK, w.Code)

	var count int64
	s.db.Model(&models.Dispatch{}).Count(&count)
	assert.Zero(s.T(), count)
}

func (s *QuoteIntegrationTestSuite) TestDeleteQuote() {
	quote := models.Quote{Consecutivo: "HS-2025-321", UsuarioID: "u1", Estado: models.QuoteStatusFollowUp}
	s.Require().NoError(s.db.Create(&quote).Error)

	w := s.doJSON("DELETE", fmt.Sprintf("/api/v1/quotes/%s", quote.ID), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var count int64
	s.db.Model(&models.Quote{}).Where("id = ?", quote.ID).Count(&count)
	assert.Zero(s.T(), count)
}

func TestQuoteIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteIntegrationTestSuite))
}
