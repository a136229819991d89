package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin     = "Admin"
	RoleSales     = "Comercial"
	RoleLogistics = "Logistica"
	RoleTechnical = "Tecnico"
)

// User represents an application user. Passwords are stored as bcrypt
// hashes and never serialized back to clients.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"not null" json:"nombre"`
	Usuario      string    `gorm:"uniqueIndex;not null" json:"usuario"`
	Cargo        string    `json:"cargo"`
	Email        string    `json:"email"`
	Telefono     string    `json:"telefono"`
	Rol          string    `gorm:"default:'Comercial'" json:"rol"`
	Permisos     []string  `gorm:"serializer:json" json:"permisos"` // permitted module ids
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "app_users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the given plaintext matches the stored hash
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// HasModule reports whether the user may access the given module id
func (u *User) HasModule(moduleID string) bool {
	for _, m := range u.Permisos {
		if m == moduleID {
			return true
		}
	}
	return false
}
