package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/poker-live/internal/models"
	"github.com/thereayou/poker-live/internal/poker"
	"gorm.io/gorm"
)

// PersistVotes сохраняет все голоса раунда одной транзакцией:
// частично записанный раунд в базе недопустим
func (d *Database) PersistVotes(roomID string, batch []poker.VoteRecord) error {
	sessionID, err := uuid.Parse(roomID)
	if err != nil {
		return err
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			return err
		}

		for _, record := range batch {
			vote := models.Vote{
				SessionID:  sessionID,
				StoryID:    record.StoryID,
				UserID:     record.UserID,
				CardValue:  record.CardValue,
				FinalValue: record.FinalValue,
				VotedAt:    time.Now(),
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// PersistHistory сохраняет записи истории одной транзакцией
func (d *Database) PersistHistory(roomID string, records []poker.HistoryRecord) error {
	sessionID, err := uuid.Parse(roomID)
	if err != nil {
		return err
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			return err
		}

		for _, record := range records {
			history := models.History{
				SessionID:  sessionID,
				StoryID:    record.StoryID,
				StoryTitle: record.StoryTitle,
				CardValue:  record.CardValue,
				RecordedAt: record.RecordedAt,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) GetSessionHistory(roomID string) ([]models.History, error) {
	var records []models.History
	err := d.db.
		Where("session_id = ?", roomID).
		Order("recorded_at ASC").
		Find(&records).Error
	return records, err
}
