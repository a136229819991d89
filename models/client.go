package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a customer the company sells to
type Client struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"not null" json:"nombre"`
	NIT         string    `gorm:"column:nit" json:"nit"`
	Contacto    string    `json:"contacto"`
	Telefono    string    `json:"telefono"`
	Correo      string    `json:"correo"`
	Direccion   string    `json:"direccion"`
	Coordenadas string    `json:"coordenadas,omitempty"` // "lat,lng", optional
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clientes"
}

// BeforeCreate assigns a server-generated id when none is provided
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
