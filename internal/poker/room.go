package poker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar,omitempty"`
	Role   string    `json:"role"`
}

type Story struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
}

type Vote struct {
	Value       string      `json:"value"`
	Participant Participant `json:"participant"`
}

type HistoryRecord struct {
	StoryID    uuid.UUID `json:"story_id"`
	StoryTitle string    `json:"story_title"`
	CardValue  float64   `json:"card_value"`
	RecordedAt time.Time `json:"history_date"`
}

type roomTimer struct {
	timeLeft int
	stop     chan struct{}
}

// Room хранит живое состояние одной комнаты. Все поля защищены mu;
// комнаты не блокируют друг друга.
type Room struct {
	ID string

	mu sync.Mutex

	participants map[uuid.UUID]Participant
	// порядок подключения, нужен детерминизм при переопределении лидером
	participantOrder []uuid.UUID

	stories           []Story
	currentStoryIndex int

	votes map[uuid.UUID]Vote
	// порядок подачи голосов; повторный голос сохраняет позицию
	voteOrder []uuid.UUID

	leaderOverride bool
	lastAverage    float64
	history        []HistoryRecord
	timer          *roomTimer

	// выставляется, когда комната опустела; вход сбрасывает
	emptySince *time.Time
}

func newRoom(id string) *Room {
	return &Room{
		ID:           id,
		participants: make(map[uuid.UUID]Participant),
		votes:        make(map[uuid.UUID]Vote),
	}
}

func (r *Room) addParticipant(p Participant) {
	if _, ok := r.participants[p.ID]; !ok {
		r.participantOrder = append(r.participantOrder, p.ID)
	}
	r.participants[p.ID] = p
	r.emptySince = nil
}

func (r *Room) removeParticipant(id uuid.UUID) {
	if _, ok := r.participants[id]; !ok {
		return
	}
	delete(r.participants, id)
	for i, pid := range r.participantOrder {
		if pid == id {
			r.participantOrder = append(r.participantOrder[:i], r.participantOrder[i+1:]...)
			break
		}
	}
	// голос ушедшего не должен участвовать в кворуме раунда
	if _, ok := r.votes[id]; ok {
		delete(r.votes, id)
		for i, vid := range r.voteOrder {
			if vid == id {
				r.voteOrder = append(r.voteOrder[:i], r.voteOrder[i+1:]...)
				break
			}
		}
	}
	if len(r.participants) == 0 {
		now := time.Now()
		r.emptySince = &now
	}
}

func (r *Room) setVote(id uuid.UUID, v Vote) {
	if _, ok := r.votes[id]; !ok {
		r.voteOrder = append(r.voteOrder, id)
	}
	r.votes[id] = v
}

func (r *Room) clearVotes() {
	r.votes = make(map[uuid.UUID]Vote)
	r.voteOrder = nil
}

// participantList возвращает участников в порядке подключения
func (r *Room) participantList() []Participant {
	list := make([]Participant, 0, len(r.participants))
	for _, id := range r.participantOrder {
		list = append(list, r.participants[id])
	}
	return list
}

// voteList возвращает голоса в порядке подачи
func (r *Room) voteList() []Vote {
	list := make([]Vote, 0, len(r.votes))
	for _, id := range r.voteOrder {
		if v, ok := r.votes[id]; ok {
			list = append(list, v)
		}
	}
	return list
}

func (r *Room) historyList() []HistoryRecord {
	list := make([]HistoryRecord, len(r.history))
	copy(list, r.history)
	return list
}

func (r *Room) currentStory() Story {
	return r.stories[r.currentStoryIndex]
}

func (r *Room) isLastStory() bool {
	return r.currentStoryIndex == len(r.stories)-1
}

// stopTimerLocked гасит таймер, если он запущен; вызывается под mu
func (r *Room) stopTimerLocked() bool {
	if r.timer == nil {
		return false
	}
	close(r.timer.stop)
	r.timer = nil
	return true
}
