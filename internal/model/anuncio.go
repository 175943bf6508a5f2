package model

import (
	"time"

	"github.com/google/uuid"
)

// Anuncio is an internal announcement.
// Estado: "Activo" | "Finalizado". The transition happens either explicitly
// or lazily on read once FinishedAt has passed; there is no background timer.
type Anuncio struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Message    string    `gorm:"not null"`
	CreatedAt  time.Time
	FinishedAt *time.Time
	Estado     string `gorm:"type:varchar(20);not null;default:'Activo'"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
