package models

import (
	"github.com/google/uuid"
	"time"
)

// Статусы сессии
const (
	SessionStatusWaiting = "waiting"
	SessionStatusLive    = "live"
)

type Session struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string    `gorm:"not null"`
	Description       string
	Code              string `gorm:"index"`
	LeaderID          uuid.UUID `gorm:"not null"`
	Status            string    `gorm:"default:'waiting';check:status IN ('waiting','live')"`
	IsActive          bool      `gorm:"default:true"`
	IsStarted         bool      `gorm:"default:false"`
	Capacity          int       `gorm:"default:8"`
	CurrentStoryIndex int       `gorm:"default:0"`
	CreatedBy         uuid.UUID
	CreatedAt         time.Time

	// Связи
	Stories []Story       `gorm:"foreignKey:SessionID"`
	Members []JoinSession `gorm:"foreignKey:SessionID"`
	Chats   []Chat        `gorm:"foreignKey:SessionID"`
	Votes   []Vote        `gorm:"foreignKey:SessionID"`
	History []History     `gorm:"foreignKey:SessionID"`
}
