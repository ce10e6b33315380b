package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/poker-live/internal/models"
	"github.com/thereayou/poker-live/internal/poker"
	"gorm.io/gorm"
)

func (d *Database) CreateSession(session *models.Session) error {
	return d.db.Create(session).Error
}

func (d *Database) GetSession(id string) (*models.Session, error) {
	var session models.Session
	if err := d.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *Database) FindSessionByCode(code string) (*models.Session, error) {
	var session models.Session
	if err := d.db.Where("code = ? AND is_active = true", code).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *Database) ListActiveSessions() ([]models.Session, error) {
	var sessions []models.Session
	err := d.db.Where("is_active = true").Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (d *Database) AddStories(sessionID uuid.UUID, stories []models.Story) error {
	for i := range stories {
		stories[i].SessionID = sessionID
		stories[i].Position = i
	}
	return d.db.Create(&stories).Error
}

// ResolveLeader возвращает лидера комнаты
func (d *Database) ResolveLeader(roomID string) (uuid.UUID, error) {
	session, err := d.GetSession(roomID)
	if err != nil {
		return uuid.Nil, err
	}
	return session.LeaderID, nil
}

// GetStories возвращает истории сессии в заданном порядке.
// Пустой результат означает, что сессия еще не готова, это не ошибка.
func (d *Database) GetStories(roomID string) ([]poker.Story, error) {
	var stories []models.Story
	err := d.db.
		Where("session_id = ?", roomID).
		Order("position ASC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}

	result := make([]poker.Story, len(stories))
	for i, s := range stories {
		result[i] = poker.Story{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Priority:    s.Priority,
		}
	}
	return result, nil
}

// WasEverMember проверяет, числился ли пользователь в сессии
func (d *Database) WasEverMember(roomID string, userID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.JoinSession{}).
		Where("session_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}

func (d *Database) SessionStatus(roomID string) (poker.SessionStatus, error) {
	session, err := d.GetSession(roomID)
	if err != nil {
		return poker.SessionStatus{}, err
	}
	return poker.SessionStatus{
		IsStarted:         session.IsStarted,
		CurrentStoryIndex: session.CurrentStoryIndex,
	}, nil
}

func (d *Database) MarkStarted(roomID string) error {
	return d.db.Model(&models.Session{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"is_started": true,
			"status":     models.SessionStatusLive,
		}).Error
}

func (d *Database) MarkInactive(roomID string) error {
	return d.db.Model(&models.Session{}).
		Where("id = ?", roomID).
		Update("is_active", false).Error
}

func (d *Database) SetStoryIndex(roomID string, index int) error {
	return d.db.Model(&models.Session{}).
		Where("id = ?", roomID).
		Update("current_story_index", index).Error
}

// MarkJoined открывает запись членства; повторный вход
// поверх открытой записи ничего не меняет
func (d *Database) MarkJoined(roomID string, userID uuid.UUID) error {
	sessionID, err := uuid.Parse(roomID)
	if err != nil {
		return err
	}

	var existing models.JoinSession
	err = d.db.
		Where("session_id = ? AND user_id = ? AND is_left = false", sessionID, userID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return d.db.Create(&models.JoinSession{
		SessionID: sessionID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}).Error
}

// MarkLeft закрывает открытую запись членства
func (d *Database) MarkLeft(roomID string, userID uuid.UUID) error {
	now := time.Now()
	return d.db.Model(&models.JoinSession{}).
		Where("session_id = ? AND user_id = ? AND is_left = false", roomID, userID).
		Updates(map[string]interface{}{
			"left_at": &now,
			"is_left": true,
		}).Error
}
