package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpsoluciones/crm-api/models"
)

func TestCreatePurchaseOrder_TotalsAndConsecutive(t *testing.T) {
	db := setupControllerTest(t)

	supplier := models.Supplier{Nombre: "Mayorista XYZ", Coordenadas: "6.2,-75.5"}
	require.NoError(t, db.Create(&supplier).Error)

	body := map[string]interface{}{
		"proveedorId": supplier.ID,
		"items": []map[string]interface{}{
			{"productoId": "p1", "nombreProducto": "Switch 24p", "cantidad": 2, "precioUnitario": 900},
			{"productoId": "p2", "nombreProducto": "Patch Cord", "cantidad": 10, "precioUnitario": 12},
		},
	}
	c, w := testRequest(t, "POST", body, nil, salesClaims("user-1"))
	CreatePurchaseOrder(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var saved models.PurchaseOrder
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, "OC-0001", saved.Consecutivo)
	assert.Equal(t, models.POStatusPending, saved.Estado)
	assert.Equal(t, "Mayorista XYZ", saved.NombreProveedor)
	assert.InDelta(t, 1920.0, saved.Subtotal, 0.001)
	assert.InDelta(t, 364.8, saved.IVA, 0.001)
	assert.InDelta(t, 2284.8, saved.Total, 0.001)

	// Second order gets the next number
	c, w = testRequest(t, "POST", body, nil, salesClaims("user-1"))
	CreatePurchaseOrder(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.PurchaseOrder{}).Where("consecutivo = ?", "OC-0002").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListPurchaseOrders_RoleFilter(t *testing.T) {
	db := setupControllerTest(t)

	require.NoError(t, db.Create(&models.PurchaseOrder{Consecutivo: "OC-0001", UsuarioID: "user-1"}).Error)
	require.NoError(t, db.Create(&models.PurchaseOrder{Consecutivo: "OC-0002", UsuarioID: "user-2"}).Error)

	c, w := testRequest(t, "GET", nil, nil, salesClaims("user-1"))
	ListPurchaseOrders(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 1)

	c, w = testRequest(t, "GET", nil, nil, adminClaims("admin-1"))
	ListPurchaseOrders(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)
}

func TestListPurchaseOrders_AttachesSLA(t *testing.T) {
	db := setupControllerTest(t)

	require.NoError(t, db.Create(&models.PurchaseOrder{
		Consecutivo: "OC-0001", UsuarioID: "user-1", Fecha: "2020-01-01", Estado: models.POStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.PurchaseOrder{
		Consecutivo: "OC-0002", UsuarioID: "user-1", Fecha: "2020-01-01", Estado: models.POStatusWarehoused,
	}).Error)

	c, w := testRequest(t, "GET", nil, nil, adminClaims("admin-1"))
	ListPurchaseOrders(c)
	require.Equal(t, http.StatusOK, w.Code)

	rows, ok := decodeResponse(t, w)["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)

	colors := map[string]string{}
	for _, row := range rows {
		order := row.(map[string]interface{})
		sla, ok := order["sla"].(map[string]interface{})
		require.True(t, ok, "row %v has no sla", order["consecutivo"])
		colors[order["consecutivo"].(string)] = sla["color"].(string)
	}
	assert.Equal(t, "red", colors["OC-0001"])
	assert.Equal(t, "completed", colors["OC-0002"])
}

func TestCompletePurchaseOrder(t *testing.T) {
	db := setupControllerTest(t)

	order := models.PurchaseOrder{Consecutivo: "OC-0001", UsuarioID: "user-1", Estado: models.POStatusPending}
	require.NoError(t, db.Create(&order).Error)

	c, w := testRequest(t, "POST", nil, gin.Params{{Key: "id", Value: order.ID}}, logisticsClaims("log-1"))
	CompletePurchaseOrder(c)
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.PurchaseOrder
	require.NoError(t, db.First(&saved, "id = ?", order.ID).Error)
	assert.Equal(t, models.POStatusPickedUp, saved.Estado)
}

func TestCompletePurchaseOrder_NotFound(t *testing.T) {
	setupControllerTest(t)

	c, w := testRequest(t, "POST", nil, gin.Params{{Key: "id", Value: "missing"}}, logisticsClaims("log-1"))
	CompletePurchaseOrder(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
