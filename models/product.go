package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricePoint is one entry in a product's purchase price history
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// Product represents a catalog item. History is append-only: every save
// that carries a purchase price adds a new entry, entries are never
// removed or reordered.
type Product struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	Nombre       string       `gorm:"not null" json:"nombre"`
	NumPart      string       `gorm:"column:num_part" json:"numPart"`
	Descripcion  string       `json:"descripcion"`
	Unidad       string       `gorm:"default:'Und'" json:"unidad"`
	PrecioCompra float64      `gorm:"column:precio_compra" json:"precioCompra"`
	History      []PricePoint `gorm:"serializer:json" json:"history"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "productos"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AppendPricePoint records the current purchase price in the history
func (p *Product) AppendPricePoint(date string) {
	p.History = append(p.History, PricePoint{Date: date, Price: p.PrecioCompra})
}
