package models

import (
	"github.com/google/uuid"
	"time"
)

type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"not null;index"`
	UserID    uuid.UUID `gorm:"not null"`
	Username  string    `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	SentAt    time.Time

	// Связи
	Session Session `gorm:"foreignKey:SessionID"`
}
