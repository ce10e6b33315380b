package models

import (
	"github.com/google/uuid"
	"time"
)

type Vote struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID  uuid.UUID `gorm:"not null;index"`
	StoryID    uuid.UUID `gorm:"not null;index"`
	UserID     uuid.UUID `gorm:"not null"`
	CardValue  string    `gorm:"not null"` // карта, выбранная участником
	FinalValue string    `gorm:"not null"` // согласованное значение раунда
	VotedAt    time.Time

	// Связи
	Session Session `gorm:"foreignKey:SessionID"`
	Story   Story   `gorm:"foreignKey:StoryID"`
}
