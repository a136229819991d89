package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification channels
const (
	NotifyChannelEmail    = "email"
	NotifyChannelWhatsApp = "whatsapp"
)

// Notification statuses
const (
	NotifyStatusPending    = "pending"
	NotifyStatusDispatched = "dispatched"
)

// Notification is an outbox row. Workflow handlers enqueue rows here
// instead of opening compose links inline; the dispatcher endpoint turns
// a pending row into a mailto:/wa.me deep link and marks it dispatched.
// There is no delivery confirmation beyond that.
type Notification struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Channel      string     `gorm:"not null" json:"channel"`
	Recipient    string     `gorm:"not null" json:"recipient"` // email address or phone number
	Subject      string     `json:"subject"`                   // unused for whatsapp
	Body         string     `gorm:"type:text" json:"body"`
	Status       string     `gorm:"default:'pending';index" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notificaciones"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
