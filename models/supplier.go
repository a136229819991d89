package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a vendor the company buys from. Unlike clients,
// suppliers always carry coordinates so pickup routes can be built.
type Supplier struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	NIT         string    `gorm:"column:nit" json:"nit"`
	Contacto    string    `json:"contacto"`
	Telefono    string    `json:"telefono"`
	Correo      string    `json:"correo"`
	Direccion   string    `json:"direccion"`
	Coordenadas string    `gorm:"not null" json:"coordenadas"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Supplier model
func (Supplier) TableName() string {
	return "proveedores"
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
