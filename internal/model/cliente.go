package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer record of a negocio. Email is unique across the
// system and checked before insert so the conflict is user-actionable.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NegocioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
