package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/poker-live/internal/models"
	"github.com/thereayou/poker-live/internal/poker"
)

// AppendChat сохраняет сообщение и возвращает его с меткой времени
func (d *Database) AppendChat(roomID string, sender poker.Participant, message string) (poker.ChatMessage, error) {
	sessionID, err := uuid.Parse(roomID)
	if err != nil {
		return poker.ChatMessage{}, err
	}

	chat := models.Chat{
		SessionID: sessionID,
		UserID:    sender.ID,
		Username:  sender.Name,
		Message:   message,
		SentAt:    time.Now(),
	}

	if err := d.db.Create(&chat).Error; err != nil {
		return poker.ChatMessage{}, err
	}

	return poker.ChatMessage{
		Message:   chat.Message,
		Sender:    sender,
		Timestamp: chat.SentAt,
	}, nil
}

// ChatBacklog возвращает сообщения комнаты от старых к новым
func (d *Database) ChatBacklog(roomID string) ([]poker.ChatMessage, error) {
	var chats []models.Chat
	err := d.db.
		Where("session_id = ?", roomID).
		Order("sent_at ASC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}

	backlog := make([]poker.ChatMessage, len(chats))
	for i, chat := range chats {
		backlog[i] = poker.ChatMessage{
			Message: chat.Message,
			Sender: poker.Participant{
				ID:   chat.UserID,
				Name: chat.Username,
			},
			Timestamp: chat.SentAt,
		}
	}
	return backlog, nil
}
