package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote lifecycle states
const (
	QuoteStatusFollowUp = "Seguimiento"
	QuoteStatusWon      = "Ganado"
	QuoteStatusLost     = "Perdido"
)

// QuoteItem is one priced line of a quote. Utilidad and IVA are
// percentages applied per line, so heterogeneous rates across lines of
// the same quote are expected.
type QuoteItem struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"productoId"`
	ProveedorID   string  `json:"proveedorId"`
	Unidad        string  `json:"unidad"`
	Cantidad      float64 `json:"cantidad"`
	CostoUnitario float64 `json:"costoUnitario"`
	Utilidad      float64 `json:"utilidad"` // markup %
	IVA           float64 `json:"iva"`      // tax %
}

// UnitSalePrice is the per-unit sale price after markup
func (i QuoteItem) UnitSalePrice() float64 {
	return i.CostoUnitario * (1 + i.Utilidad/100)
}

// Subtotal is the line amount before tax
func (i QuoteItem) Subtotal() float64 {
	return i.UnitSalePrice() * i.Cantidad
}

// Tax is the line IVA amount
func (i QuoteItem) Tax() float64 {
	return i.Subtotal() * (i.IVA / 100)
}

// Total is the line amount including tax
func (i QuoteItem) Total() float64 {
	return i.Subtotal() + i.Tax()
}

// Quote represents a priced proposal sent to a client
type Quote struct {
	ID                string      `gorm:"primaryKey" json:"id"`
	Fecha             string      `json:"fecha"` // YYYY-MM-DD
	ClienteID         string      `gorm:"column:cliente_id;index" json:"clienteId"`
	ClienteNombre     string      `gorm:"column:cliente_nombre" json:"clienteNombre"`
	Consecutivo       string      `gorm:"not null" json:"consecutivo"`
	Items             []QuoteItem `gorm:"serializer:json" json:"items"`
	Subtotal          float64     `json:"subtotal"`
	IVA               float64     `gorm:"column:iva" json:"iva"`
	Total             float64     `json:"total"`
	Ejecutivo         string      `json:"ejecutivo"`
	EjecutivoEmail    string      `gorm:"column:ejecutivo_email" json:"ejecutivoEmail"`
	EjecutivoTelefono string      `gorm:"column:ejecutivo_telefono" json:"ejecutivoTelefono,omitempty"`
	UsuarioID         string      `gorm:"column:usuario_id;index" json:"usuarioId"`
	Estado            string      `gorm:"default:'Seguimiento'" json:"estado"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Quote model
func (Quote) TableName() string {
	return "cotizaciones"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// ComputeTotals recalculates subtotal, IVA and total from the line items.
// Each line's subtotal and tax are computed independently before summing.
func (q *Quote) ComputeTotals() {
	var subtotal, iva float64
	for _, item := range q.Items {
		subtotal += item.Subtotal()
		iva += item.Tax()
	}
	q.Subtotal = subtotal
	q.IVA = iva
	q.Total = subtotal + iva
}
