package models

import (
	"github.com/google/uuid"
	"time"
)

// JoinSession фиксирует членство пользователя в сессии.
// Запись остается после выхода: по ней проверяется,
// был ли пользователь участником уже начатой сессии.
type JoinSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"not null;index"`
	UserID    uuid.UUID `gorm:"not null;index"`
	JoinedAt  time.Time `gorm:"not null"`
	LeftAt    *time.Time
	IsLeft    bool `gorm:"default:false"`

	// Связи
	Session Session `gorm:"foreignKey:SessionID"`
}
