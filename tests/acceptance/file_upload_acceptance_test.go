package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
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
	"github.com/helpsoluciones/crm-api/services"
	"github.com/helpsoluciones/crm-api/tests/testutil"
)

// FileUploadAcceptanceTestSuite covers delivery-proof uploads over HTTP
// with the image storage mocked out.
type FileUploadAcceptanceTestSuite struct {
	suite.Suite
	server   *httptest.Server
	db       *gorm.DB
	token    string
	dispatch models.Dispatch
}

func (s *FileUploadAcceptanceTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testutil.SetupTestConfig(s.T())
	s.db = testutil.SetupTestDB(s.T())
	services.NewMockImageService().SetAsMockForTesting()

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", controllers.Login)
	authed := v1.Group("", middleware.EnsureValidToken(cfg))
	authed.POST("/dispatches/:id/proof", middleware.RequireModule("despachos"), controllers.UploadDispatchProof)
	authed.GET("/uploads/url", controllers.GetImageURL)
	s.server = httptest.NewServer(router)

	logistics := models.User{Nombre: "Pedro Ruiz", Usuario: "pedro", Rol: models.RoleLogistics, Permisos: []string{"despachos"}}
	s.Require().NoError(logistics.SetPassword("clave12345"))
	s.Require().NoError(s.db.Create(&logistics).Error)

	s.dispatch = models.Dispatch{
		CotizacionID:          "q-1",
		ConsecutivoCotizacion: "HS-2025-101",
		ClienteNombre:         "ACME S.A.S",
		Estado:                models.DispatchStatusShipped,
	}
	s.Require().NoError(s.db.Create(&s.dispatch).Error)

	s.token = s.login("pedro", "clave12345")
}

func (s *FileUploadAcceptanceTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *FileUploadAcceptanceTestSuite) login(usuario, password string) string {
	body, _ := json.Marshal(map[string]string{"usuario": usuario, "password": password})
	resp, err := http.Post(s.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed.Data.Token
}

func (s *FileUploadAcceptanceTestSuite) uploadProof(proofType, filename string, content []byte) *http.Response {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	s.Require().NoError(writer.WriteField("type", proofType))
	part, err := writer.CreateFormFile("photo", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	url := fmt.Sprintf("%s/api/v1/dispatches/%s/proof", s.server.URL, s.dispatch.ID)
	req, err := http.NewRequest("POST", url, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *FileUploadAcceptanceTestSuite) TestUploadDeliveryProof() {
	resp := s.uploadProof("entrega", "entrega.png", []byte("fake png content"))
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated models.Dispatch
	s.Require().NoError(s.db.First(&updated, "id = ?", s.dispatch.ID).Error)
	assert.Equal(s.T(), "despachos/mock_entrega.png", updated.FotoEntrega)
	assert.Empty(s.T(), updated.FotoRemision)

	// The stored key resolves to a URL through the uploads endpoint
	req, err := http.NewRequest("GET", s.server.URL+"/api/v1/uploads/url?key="+updated.FotoEntrega, nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	urlResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer urlResp.Body.Close()
	s.Require().Equal(http.StatusOK, urlResp.StatusCode)

	var parsed struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(urlResp.Body).Decode(&parsed))
	assert.Contains(s.T(), parsed.Data.URL, updated.FotoEntrega)
}

func (s *FileUploadAcceptanceTestSuite) TestUploadRemisionProof() {
	resp := s.uploadProof("remision", "remision.jpg", []byte("fake jpg content"))
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated models.Dispatch
	s.Require().NoError(s.db.First(&updated, "id = ?", s.dispatch.ID).Error)
	assert.Equal(s.T(), "despachos/mock_remision.jpg", updated.FotoRemision)
}

func (s *FileUploadAcceptanceTestSuite) TestRejectsUnsupportedFormat() {
	resp := s.uploadProof("entrega", "entrega.gif", []byte("gif content"))
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *FileUploadAcceptanceTestSuite) TestRejectsUnknownProofType() {
	resp := s.uploadProof("factura", "foto.png", []byte("png content"))
	defer resp.Body.Close()
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func TestFileUploadAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(FileUploadAcceptanceTestSuite))
}
