package poker

import (
	"time"

	"github.com/google/uuid"
)

// Имена событий комнаты. Контракт с фронтендом, менять нельзя.
const (
	EventSuccess              = "success"
	EventError                = "error"
	EventParticipantList      = "participant-list"
	EventParticipantCount     = "participant-count-updated"
	EventStoryChanged         = "story-changed"
	EventVotesUpdated         = "votes-updated"
	EventVotingResults        = "voting-results"
	EventVotingRepeated       = "voting-repeated"
	EventVotingHistory        = "voting-history-updated"
	EventTimerStarted         = "timer-started"
	EventTimerUpdate          = "timer-update"
	EventTimerFinished        = "timer-finished"
	EventTimerStopped         = "timer-stopped"
	EventChatHistory          = "chat-history"
	EventChatMessage          = "message"
	EventRoomCreator          = "room-creator"
	EventSessionStatus        = "session-status"
	EventSessionStarted       = "session-started"
	EventSessionEnded         = "session-ended"
	EventSessionStatusChanged = "session-status-changed"
)

type Notice struct {
	Value string `json:"value"`
}

type StoryChangedEvent struct {
	Story  Story `json:"story"`
	IsLast bool  `json:"isLast"`
}

type VotesUpdatedEvent struct {
	Votes        []Vote        `json:"votes"`
	Participants []Participant `json:"participants"`
}

type VotingResultsEvent struct {
	Average      float64 `json:"average"`
	Median       int     `json:"median"`
	Mode         int     `json:"mode"`
	Votes        []Vote  `json:"votes"`
	HasConsensus bool    `json:"hasConsensus"`
}

type TimerStartedEvent struct {
	Duration int `json:"duration"`
}

type TimerUpdateEvent struct {
	TimeLeft int `json:"timeLeft"`
}

type ParticipantCountEvent struct {
	RoomID string `json:"roomId"`
	Count  int    `json:"count"`
}

type SessionStatusEvent struct {
	IsStarted bool `json:"isStarted"`
}

type SessionStatusChangedEvent struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
}

type RoomCreatorEvent struct {
	LeaderID uuid.UUID `json:"leaderId"`
}

type ChatMessageEvent struct {
	Message   string      `json:"message"`
	Sender    Participant `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
}
