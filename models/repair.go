package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repair lifecycle states, from intake to closure
const (
	RepairStatusReceived      = "Recibido"
	RepairStatusDiagnosing    = "En Diagnóstico"
	RepairStatusRepairing     = "En Reparación"
	RepairStatusWaitingParts  = "Esperando Repuestos"
	RepairStatusRepaired      = "Reparado"
	RepairStatusDelivered     = "Entregado"
	RepairStatusClosed        = "Cerrado"
)

// Repair service types: handled in-house or sent to an external supplier
const (
	RepairServiceInternal = "HELP SOLUCIONES"
	RepairServiceSupplier = "Proveedor"
)

// Repair represents a device taken in for service
type Repair struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Consecutivo     string    `gorm:"not null" json:"consecutivo"`
	ClienteID       string    `gorm:"column:cliente_id;index" json:"clienteId"`
	ClienteNombre   string    `gorm:"column:cliente_nombre" json:"clienteNombre"`
	Marca           string    `json:"marca"`
	Tipo            string    `json:"tipo"`
	Serial          string    `gorm:"not null" json:"serial"`
	Observaciones   string    `json:"observaciones"`
	Estado          string    `gorm:"default:'Recibido'" json:"estado"`
	TipoServicio    string    `gorm:"column:tipo_servicio;default:'HELP SOLUCIONES'" json:"tipoServicio"`
	ProveedorID     string    `gorm:"column:proveedor_id" json:"proveedorId,omitempty"`
	ProveedorNombre string    `gorm:"column:proveedor_nombre" json:"proveedorNombre,omitempty"`
	Foto            string    `json:"foto,omitempty"`
	FechaIngreso    string    `gorm:"column:fecha_ingreso" json:"fechaIngreso"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Repair model
func (Repair) TableName() string {
	return "reparaciones"
}

func (r *Repair) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// QRPayload is the content encoded on the repair ticket's QR code
func (r *Repair) QRPayload() string {
	return "ID:" + r.ID + "|CON:" + r.Consecutivo + "|SN:" + r.Serial
}
