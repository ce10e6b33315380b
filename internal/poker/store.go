package poker

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus описывает состояние сессии по данным хранилища
type SessionStatus struct {
	IsStarted         bool
	CurrentStoryIndex int
}

// VoteRecord описывает одну строку голосования для сохранения
type VoteRecord struct {
	StoryID    uuid.UUID
	UserID     uuid.UUID
	CardValue  string
	FinalValue string
}

// ChatMessage представляет сохраненное сообщение чата
type ChatMessage struct {
	Message   string      `json:"message"`
	Sender    Participant `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
}

// Store задает контракт хранилища, от которого зависит движок.
// Все записи голосов и истории в рамках одного вызова
// должны применяться атомарно.
type Store interface {
	ResolveLeader(roomID string) (uuid.UUID, error)
	GetStories(roomID string) ([]Story, error)
	WasEverMember(roomID string, userID uuid.UUID) (bool, error)
	SessionStatus(roomID string) (SessionStatus, error)

	PersistVotes(roomID string, batch []VoteRecord) error
	PersistHistory(roomID string, records []HistoryRecord) error

	MarkStarted(roomID string) error
	MarkInactive(roomID string) error
	SetStoryIndex(roomID string, index int) error

	MarkJoined(roomID string, userID uuid.UUID) error
	MarkLeft(roomID string, userID uuid.UUID) error

	AppendChat(roomID string, sender Participant, message string) (ChatMessage, error)
	ChatBacklog(roomID string) ([]ChatMessage, error)
}

// Emitter рассылает события участникам комнат
type Emitter interface {
	ToRoom(room string, event string, data interface{})
	ToAll(event string, data interface{})
	CloseRoom(room string)
}

// Caller представляет одно соединение, которому адресуются ответы
type Caller interface {
	CallerID() uuid.UUID
	Emit(event string, data interface{}) error
}
