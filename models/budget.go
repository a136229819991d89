package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesBudget is a monthly sales target for one salesperson. The
// composite unique index keeps one budget per (salesperson, year, month).
type SalesBudget struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UsuarioID      string    `gorm:"column:usuario_id;uniqueIndex:idx_budget_period" json:"usuarioId"`
	NombreVendedor string    `gorm:"column:nombre_vendedor" json:"nombreVendedor"`
	Anio           int       `gorm:"uniqueIndex:idx_budget_period" json:"anio"`
	Mes            int       `gorm:"uniqueIndex:idx_budget_period" json:"mes"` // 0-based, 0 = January
	Monto          float64   `json:"monto"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SalesBudget model
func (SalesBudget) TableName() string {
	return "budgets"
}

func (b *SalesBudget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
