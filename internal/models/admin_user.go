package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a row in the admin panel's user list. Authentication itself is
// handled by the external identity provider; this table only tracks who may
// appear in the panel and with what role.
type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Name      string    `json:"name"`
	Role      string    `gorm:"index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
