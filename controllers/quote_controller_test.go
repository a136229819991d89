package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpsoluciones/crm-api/models"
)

func TestCreateQuote_ComputesTotalsServerSide(t *testing.T) {
	db := setupControllerTest(t)

	client := models.Client{Nombre: "ACME S.A.S", Direccion: "Calle 10 # 43-12"}
	require.NoError(t, db.Create(&client).Error)

	body := map[string]interface{}{
		"clienteId": client.ID,
		"items": []map[string]interface{}{
			{"productoId": "p1", "cantidad": 2, "costoUnitario": 100, "utilidad": 20, "iva": 19},
			{"productoId": "p2", "cantidad": 1, "costoUnitario": 50, "utilidad": 10, "iva": 19},
		},
		// Client-supplied totals must be ignored
		"subtotal": 1,
		"iva":      1,
		"total":    1,
	}

	c, w := testRequest(t, "POST", body, nil, salesClaims("user-1"))
	CreateQuote(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var saved models.Quote
	require.NoError(t, db.First(&saved).Error)
	assert.InDelta(t, 295.0, saved.Subtotal, 0.001)
	assert.InDelta(t, 56.05, saved.IVA, 0.001)
	assert.InDelta(t, 351.05, saved.Total, 0.001)
	assert.Equal(t, "user-1", saved.UsuarioID)
	assert.Equal(t, models.QuoteStatusFollowUp, saved.Estado)
	assert.Regexp(t, `^HS-\d{4}-\d{3}$`, saved.Consecutivo)
	assert.Equal(t, "ACME S.A.S", saved.ClienteNombre)
	assert.NotEmpty(t, saved.ID, "server must assign the id")
}

func TestListQuotes_RoleFilter(t *testing.T) {
	db := setupControllerTest(t)

	require.NoError(t, db.Create(&models.Quote{Consecutivo: "HS-2025-101", UsuarioID: "user-1"}).Error)
	require.NoError(t, db.Create(&models.Quote{Consecutivo: "HS-2025-102", UsuarioID: "user-2"}).Error)

	// Salesperson sees only their own quotes
	c, w := testRequest(t, "GET", nil, nil, salesClaims("user-1"))
	ListQuotes(c)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Len(t, response["data"], 1)

	// Admin sees everything
	c, w = testRequest(t, "GET", nil, nil, adminClaims("admin-1"))
	ListQuotes(c)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Len(t, response["data"], 2)
}

// seedWonWorkflow stores the client, products and a follow-up quote used
// by the won-workflow tests
func seedWonWorkflow(t *testing.T) (quote models.Quote) {
	t.Helper()
	db := setupControllerTest(t)

	client := models.Client{Nombre: "ACME S.A.S", Direccion: "Calle 10 # 43-12"}
	require.NoError(t, db.Create(&client).Error)

	p1 := models.Product{Nombre: "Switch 24p", NumPart: "SW-24-G"}
	p2 := models.Product{Nombre: "Patch Cord", NumPart: "PC-2M"}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)

	quote = models.Quote{
		Consecutivo:    "HS-2025-555",
		ClienteID:      client.ID,
		ClienteNombre:  client.Nombre,
		UsuarioID:      "user-1",
		Ejecutivo:      "Ana Torres",
		EjecutivoEmail: "ana@helpsoluciones.com.co",
		Estado:         models.QuoteStatusFollowUp,
		Items: []models.QuoteItem{
			{ProductoID: p1.ID, Cantidad: 3, CostoUnitario: 900, Utilidad: 15, IVA: 19},
			{ProductoID: p2.ID, Cantidad: 10, CostoUnitario: 12, Utilidad: 30, IVA: 19},
		},
	}
	quote.ComputeTotals()
	require.NoError(t, db.Create(&quote).Error)
	return quote
}

func updateQuoteEstado(t *testing.T, quote models.Quote, estado string) *gin.Context {
	t.Helper()
	quote.Estado = estado
	c, w := testRequest(t, "PUT", quote, gin.Params{{Key: "id", Value: quote.ID}}, salesClaims(quote.UsuarioID))
	UpdateQuote(c)
	require.Equal(t, http.StatusOK, w.Code)
	return c
}

func TestUpdateQuote_WonCreatesDispatch(t *testing.T) {
	quote := seedWonWorkflow(t)
	updateQuoteEstado(t, quote, models.QuoteStatusWon)

	db := mustDB(t)
	var dispatches []models.Dispatch
	require.NoError(t, db.Find(&dispatches).Error)
	require.Len(t, dispatches, 1, "winning a quote must create exactly one dispatch")

	d := dispatches[0]
	assert.Equal(t, quote.ID, d.CotizacionID)
	assert.Equal(t, "HS-2025-555", d.ConsecutivoCotizacion)
	assert.Equal(t, models.DispatchStatusPending, d.Estado)
	assert.Equal(t, "Calle 10 # 43-12", d.Direccion)
	assert.Equal(t, "ana@helpsoluciones.com.co", d.EjecutivoEmail)
	assert.InDelta(t, quote.Total, d.Total, 0.001)

	// Items map one-to-one in quote order
	require.Len(t, d.Items, len(quote.Items))
	for i, item := range d.Items {
		assert.Equal(t, quote.Items[i].ProductoID, item.ProductoID)
		assert.Equal(t, quote.Items[i].Cantidad, item.Cantidad)
	}
	assert.Equal(t, "Switch 24p", d.Items[0].NombreProducto)
	assert.Equal(t, "SW-24-G", d.Items[0].NumPart)
}

func TestUpdateQuote_WonIsIdempotent(t *testing.T) {
	quote := seedWonWorkflow(t)
	updateQuoteEstado(t, quote, models.QuoteStatusWon)
	updateQuoteEstado(t, quote, models.QuoteStatusWon)

	db := mustDB(t)
	var count int64
	db.Model(&models.Dispatch{}).Count(&count)
	assert.Equal(t, int64(1), count, "re-winning a quote must not create a second dispatch")
}

func TestUpdateQuote_WonQueuesNotifications(t *testing.T) {
	quote := seedWonWorkflow(t)
	updateQuoteEstado(t, quote, models.QuoteStatusWon)

	db := mustDB(t)
	var notifications []models.Notification
	require.NoError(t, db.Order("created_at ASC").Find(&notifications).Error)
	require.Len(t, notifications, 2)

	assert.Equal(t, "ana@helpsoluciones.com.co", notifications[0].Recipient)
	assert.Equal(t, "Nuevo Pedido: HS-2025-555", notifications[0].Subject)
	assert.Contains(t, notifications[0].Body, "GANADA")

	assert.Equal(t, "logistica@helpsoluciones.com.co", notifications[1].Recipient)
	assert.Equal(t, "NUEVO PEDIDO - Cotización HS-2025-555", notifications[1].Subject)
	assert.Contains(t, notifications[1].Body, "ACME S.A.S")

	for _, n := range notifications {
		assert.Equal(t, models.NotifyChannelEmail, n.Channel)
		assert.Equal(t, models.NotifyStatusPending, n.Status)
	}
}

func TestUpdateQuote_LostDoesNotCreateDispatch(t *testing.T) {
	quote := seedWonWorkflow(t)
	updateQuoteEstado(t, quote, models.QuoteStatusLost)

	db := mustDB(t)
	var count int64
	db.Model(&models.Dispatch{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateDispatchForWonQuote_MissingProductFallbacks(t *testing.T) {
	db := setupControllerTest(t)

	quote := models.Quote{
		Consecutivo: "HS-2025-777",
		ClienteID:   "no-such-client",
		UsuarioID:   "user-1",
		Estado:      models.QuoteStatusWon,
		Items: []models.QuoteItem{
			{ProductoID: "no-such-product", Cantidad: 1},
		},
	}
	require.NoError(t, db.Create(&quote).Error)

	created := createDispatchForWonQuote(db, &quote)
	require.True(t, created)

	var d models.Dispatch
	require.NoError(t, db.First(&d).Error)
	assert.Equal(t, "N/A", d.Direccion)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "Producto Desconocido", d.Items[0].NombreProducto)
	assert.Equal(t, "N/A", d.Items[0].NumPart)
}

func TestDeleteQuote(t *testing.T) {
	db := setupControllerTest(t)
	quote := models.Quote{Consecutivo: "HS-2025-900", UsuarioID: "user-1"}
	require.NoError(t, db.Create(&quote).Error)

	c, w := testRequest(t, "DELETE", nil, gin.Params{{Key: "id", Value: quote.ID}}, adminClaims("admin-1"))
	DeleteQuote(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Quote{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
