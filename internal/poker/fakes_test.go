package poker

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

type emittedEvent struct {
	room  string
	event string
	data  interface{}
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	closed []string
}

func (e *fakeEmitter) ToRoom(room string, event string, data interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{room: room, event: event, data: data})
}

func (e *fakeEmitter) ToAll(event string, data interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{event: event, data: data})
}

func (e *fakeEmitter) CloseRoom(room string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = append(e.closed, room)
}

func (e *fakeEmitter) count(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, ev := range e.events {
		if ev.event == event {
			n++
		}
	}
	return n
}

func (e *fakeEmitter) last(event string) (emittedEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.events) - 1; i >= 0; i-- {
		if e.events[i].event == event {
			return e.events[i], true
		}
	}
	return emittedEvent{}, false
}

type fakeCaller struct {
	id     uuid.UUID
	mu     sync.Mutex
	events []emittedEvent
}

func (c *fakeCaller) CallerID() uuid.UUID { return c.id }

func (c *fakeCaller) Emit(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, emittedEvent{event: event, data: data})
	return nil
}

func (c *fakeCaller) received(event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ev := range c.events {
		if ev.event == event {
			return true
		}
	}
	return false
}

type fakeStore struct {
	mu sync.Mutex

	leader  uuid.UUID
	stories []Story
	started bool
	members map[uuid.UUID]bool

	votes   [][]VoteRecord
	history [][]HistoryRecord

	failVotes   bool
	failHistory bool
	statusErr   error

	inactive   []string
	startedIDs []string
	indexes    []int
	chat       []ChatMessage
}

func (s *fakeStore) ResolveLeader(roomID string) (uuid.UUID, error) {
	return s.leader, nil
}

func (s *fakeStore) GetStories(roomID string) ([]Story, error) {
	return s.stories, nil
}

func (s *fakeStore) WasEverMember(roomID string, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[userID], nil
}

func (s *fakeStore) SessionStatus(roomID string) (SessionStatus, error) {
	if s.statusErr != nil {
		return SessionStatus{}, s.statusErr
	}
	return SessionStatus{IsStarted: s.started}, nil
}

func (s *fakeStore) PersistVotes(roomID string, batch []VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failVotes {
		return errors.New("db unavailable")
	}
	s.votes = append(s.votes, batch)
	return nil
}

func (s *fakeStore) PersistHistory(roomID string, records []HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failHistory {
		return errors.New("db unavailable")
	}
	s.history = append(s.history, records)
	return nil
}

func (s *fakeStore) MarkStarted(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedIDs = append(s.startedIDs, roomID)
	return nil
}

func (s *fakeStore) MarkInactive(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inactive = append(s.inactive, roomID)
	return nil
}

func (s *fakeStore) SetStoryIndex(roomID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes = append(s.indexes, index)
	return nil
}

func (s *fakeStore) MarkJoined(roomID string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members == nil {
		s.members = make(map[uuid.UUID]bool)
	}
	s.members[userID] = true
	return nil
}

func (s *fakeStore) MarkLeft(roomID string, userID uuid.UUID) error {
	return nil
}

func (s *fakeStore) AppendChat(roomID string, sender Participant, message string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := ChatMessage{Message: message, Sender: sender}
	s.chat = append(s.chat, saved)
	return saved, nil
}

func (s *fakeStore) ChatBacklog(roomID string) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat, nil
}

func (s *fakeStore) savedVoteBatches() [][]VoteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.votes
}

func (s *fakeStore) savedHistory() [][]HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}
