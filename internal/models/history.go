package models

import (
	"github.com/google/uuid"
	"time"
)

type History struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID  uuid.UUID `gorm:"not null;index"`
	StoryID    uuid.UUID `gorm:"not null"`
	StoryTitle string
	CardValue  float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`

	// Связи
	Session Session `gorm:"foreignKey:SessionID"`
}
