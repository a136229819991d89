package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Driver vehicle document identifiers accepted by the upload endpoint
const (
	DriverDocPropertyCard = "tarjetaPropiedad"
	DriverDocSOAT         = "soat"
	DriverDocInspection   = "tecnomecanica"
)

// Driver represents a delivery driver and their vehicle. Document fields
// hold storage keys for the scanned paperwork.
type Driver struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Nombre           string    `gorm:"not null" json:"nombre"`
	Cedula           string    `json:"cedula"`
	Telefono         string    `json:"telefono"`
	PlacaVehiculo    string    `gorm:"column:placa_vehiculo" json:"placaVehiculo"`
	ModeloVehiculo   string    `gorm:"column:modelo_vehiculo" json:"modeloVehiculo"`
	TipoVehiculo     string    `gorm:"column:tipo_vehiculo" json:"tipoVehiculo"`
	TarjetaPropiedad string    `gorm:"column:tarjeta_propiedad" json:"tarjetaPropiedad,omitempty"`
	SOAT             string    `gorm:"column:soat" json:"soat,omitempty"`
	Tecnomecanica    string    `json:"tecnomecanica,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Driver model
func (Driver) TableName() string {
	return "conductores"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
