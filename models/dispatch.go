package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dispatch lifecycle states
const (
	DispatchStatusPending   = "Pendiente"
	DispatchStatusPreparing = "Preparando"
	DispatchStatusShipped   = "Despachado"
	DispatchStatusDelivered = "Entregado"
	DispatchStatusPartial   = "Entrega Parcial"
)

// DispatchItem is one outbound delivery line, denormalized from the quote
type DispatchItem struct {
	ProductoID     string  `json:"productoId"`
	NombreProducto string  `json:"nombreProducto"`
	NumPart        string  `json:"numPart"`
	Cantidad       float64 `json:"cantidad"`
}

// Dispatch represents a delivery task fulfilling a won quote. The unique
// index on cotizacion_id guarantees at most one dispatch per quote even
// under concurrent "mark as won" requests.
type Dispatch struct {
	ID                     string         `gorm:"primaryKey" json:"id"`
	CotizacionID           string         `gorm:"column:cotizacion_id;uniqueIndex" json:"cotizacionId"`
	ConsecutivoCotizacion  string         `gorm:"column:consecutivo_cotizacion" json:"consecutivoCotizacion"`
	FechaSolicitud         string         `gorm:"column:fecha_solicitud" json:"fechaSolicitud"` // YYYY-MM-DD
	ClienteID              string         `gorm:"column:cliente_id" json:"clienteId"`
	ClienteNombre          string         `gorm:"column:cliente_nombre" json:"clienteNombre"`
	Direccion              string         `json:"direccion"`
	Items                  []DispatchItem `gorm:"serializer:json" json:"items"`
	Total                  float64        `json:"total"`
	EjecutivoEmail         string         `gorm:"column:ejecutivo_email" json:"ejecutivoEmail"`
	EjecutivoTelefono      string         `gorm:"column:ejecutivo_telefono" json:"ejecutivoTelefono,omitempty"`
	UsuarioID              string         `gorm:"column:usuario_id;index" json:"usuarioId"`
	Estado                 string         `gorm:"default:'Pendiente'" json:"estado"`
	ConductorID            string         `gorm:"column:conductor_id" json:"conductorId,omitempty"`
	ConductorNombre        string         `gorm:"column:conductor_nombre" json:"conductorNombre,omitempty"`
	FotoEntrega            string         `gorm:"column:foto_entrega" json:"fotoEntrega,omitempty"`
	FotoRemision           string         `gorm:"column:foto_remision" json:"fotoRemision,omitempty"`
	Georeferencia          string         `json:"georeferencia,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Dispatch model
func (Dispatch) TableName() string {
	return "despachos"
}

func (d *Dispatch) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
