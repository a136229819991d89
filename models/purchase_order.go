package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrder lifecycle states
const (
	POStatusPending    = "Pendiente"
	POStatusPickedUp   = "Recogido"
	POStatusWarehoused = "En Bodega"
)

// PurchaseOrderItem is one procurement line, denormalized with the
// product's display name and part number at order time.
type PurchaseOrderItem struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"productoId"`
	NombreProducto string  `json:"nombreProducto"`
	NumPart        string  `json:"numPart"`
	Cantidad       float64 `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}

// PurchaseOrder represents an inbound procurement task against a supplier
type PurchaseOrder struct {
	ID                      string              `gorm:"primaryKey" json:"id"`
	Consecutivo             string              `gorm:"not null" json:"consecutivo"`
	Fecha                   string              `json:"fecha"` // YYYY-MM-DD
	ProveedorID             string              `gorm:"column:proveedor_id;index" json:"proveedorId"`
	NombreProveedor         string              `gorm:"column:nombre_proveedor" json:"nombreProveedor"`
	Items                   []PurchaseOrderItem `gorm:"serializer:json" json:"items"`
	Subtotal                float64             `json:"subtotal"`
	IVA                     float64             `gorm:"column:iva" json:"iva"`
	Total                   float64             `json:"total"`
	CondicionesComerciales  string              `gorm:"column:condiciones_comerciales" json:"condicionesComerciales"`
	Observaciones           string              `json:"observaciones"`
	Estado                  string              `gorm:"default:'Pendiente'" json:"estado"`
	ConductorID             string              `gorm:"column:conductor_id" json:"conductorId,omitempty"`
	ConductorNombre         string              `gorm:"column:conductor_nombre" json:"conductorNombre,omitempty"`
	FotoEntrega             string              `gorm:"column:foto_entrega" json:"fotoEntrega,omitempty"`
	FotoRemision            string              `gorm:"column:foto_remision" json:"fotoRemision,omitempty"`
	Georeferencia           string              `json:"georeferencia,omitempty"`
	UsuarioID               string              `gorm:"column:usuario_id;index" json:"usuarioId"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// TableName specifies the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "ordenes_compra"
}

func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
