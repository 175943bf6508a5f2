package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is an account holder. NegocioID is nullable: an account exists
// before it is assigned to a negocio, and tenant-scoped endpoints reject it
// until the assignment happens.
type Usuario struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null"`
	Lastname string    `gorm:"not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	// Password holds the bcrypt hash, never the plaintext.
	Password       string     `gorm:"not null"`
	NegocioID      *uuid.UUID `gorm:"type:uuid;index"`
	ProfileImage   *string
	DefaultPicture *string
	// AccesosDirectos stores the user's dashboard shortcut preferences as an
	// opaque string; presentation state, not business data.
	AccesosDirectos *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Negocio *Negocio `gorm:"foreignKey:NegocioID"`
}

// LoginAttempt is an append-only audit row. Only failures are recorded; the
// lockout check recomputes the lock state from the trailing window instead
// of persisting a flag.
type LoginAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Success     bool      `gorm:"not null"`
	AttemptedAt time.Time `gorm:"index;not null;default:now()"`
	IPAddress   *string
	Reason      *string
}
