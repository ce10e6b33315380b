package models

import (
	"github.com/google/uuid"
	"time"
)

type Story struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID     uuid.UUID `gorm:"not null;index"`
	Title         string    `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	Priority      int
	Position      int    `gorm:"not null"` // порядок внутри сессии
	FinalEstimate string
	CreatedAt     time.Time

	// Связи
	Session Session `gorm:"foreignKey:SessionID"`
	Votes   []Vote  `gorm:"foreignKey:StoryID"`
}
