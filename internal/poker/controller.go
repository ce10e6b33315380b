package poker

import (
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Controller реализует машину состояний сессии: вход, голосование,
// подсчет, смена истории, завершение. Мутации состояния комнаты и
// комнатные рассылки выполняются под замком комнаты, поэтому все
// участники видят события одного действия в одном порядке.
type Controller struct {
	registry *Registry
	store    Store
	emitter  Emitter
}

func NewController(registry *Registry, store Store, emitter Emitter) *Controller {
	return &Controller{
		registry: registry,
		store:    store,
		emitter:  emitter,
	}
}

// Join подключает участника к комнате. В начатую сессию пускаем
// только бывших участников. Все внешние чтения выполняются до
// мутации комнаты.
func (c *Controller) Join(roomID string, p Participant, caller Caller) error {
	status, err := c.store.SessionStatus(roomID)
	if err != nil {
		return ErrRoomNotFound
	}

	if status.IsStarted {
		was, err := c.store.WasEverMember(roomID, p.ID)
		if err != nil {
			return storageError(err)
		}
		if !was {
			return ErrSessionStarted
		}
	}

	stories, err := c.store.GetStories(roomID)
	if err != nil {
		return storageError(err)
	}
	if len(stories) == 0 {
		return ErrNotReady
	}

	leaderID, err := c.store.ResolveLeader(roomID)
	if err != nil {
		return ErrRoomNotFound
	}

	backlog, err := c.store.ChatBacklog(roomID)
	if err != nil {
		// чтение чата не должно блокировать вход
		log.Printf("Failed to load chat backlog for %s: %v", roomID, err)
		backlog = nil
	}

	room := c.registry.GetOrCreate(roomID)

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.stories == nil {
		room.stories = stories
	}
	room.addParticipant(p)

	if len(room.history) > 0 {
		caller.Emit(EventVotingHistory, room.historyList())
	}
	if room.timer != nil {
		caller.Emit(EventTimerStarted, TimerStartedEvent{Duration: room.timer.timeLeft})
	}

	caller.Emit(EventStoryChanged, StoryChangedEvent{
		Story:  room.currentStory(),
		IsLast: room.isLastStory(),
	})
	caller.Emit(EventChatHistory, backlog)
	caller.Emit(EventSuccess, Notice{Value: "Joined room successfully"})

	c.emitParticipantListLocked(room)

	caller.Emit(EventRoomCreator, RoomCreatorEvent{LeaderID: leaderID})
	caller.Emit(EventSessionStatus, SessionStatusEvent{IsStarted: status.IsStarted})

	if len(room.votes) > 0 {
		c.emitVotesLocked(room)
	}

	go func() {
		if err := c.store.MarkJoined(roomID, p.ID); err != nil {
			log.Printf("Failed to record join for %s in %s: %v", p.ID, roomID, err)
		}
	}()

	return nil
}

// Leave убирает участника. Опустевшая комната не удаляется сразу:
// ей дается шанс на переподключение, зачисткой занимается рипер.
func (c *Controller) Leave(roomID string, userID uuid.UUID) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	_, hadVote := room.votes[userID]
	room.removeParticipant(userID)
	c.emitParticipantListLocked(room)
	if hadVote {
		c.emitVotesLocked(room)
	}
	room.mu.Unlock()

	go func() {
		if err := c.store.MarkLeft(roomID, userID); err != nil {
			log.Printf("Failed to record leave for %s in %s: %v", userID, roomID, err)
		}
	}()

	return nil
}

// SubmitVote записывает или заменяет голос. Валидность карты здесь
// не проверяется — только при завершении голосования.
func (c *Controller) SubmitVote(roomID string, p Participant, value string) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	room.setVote(p.ID, Vote{Value: value, Participant: p})
	c.emitVotesLocked(room)
	return nil
}

// CompleteVoting подводит итог раунда: среднее, медиана, мода,
// консенсус. Историю не двигает — это работа NextStory.
func (c *Controller) CompleteVoting(roomID string) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	return c.completeVotingLocked(room)
}

func (c *Controller) completeVotingLocked(room *Room) error {
	if len(room.participants) == 0 || len(room.votes) < len(room.participants) {
		return ErrIncompleteVoting
	}

	votes := room.voteList()
	if !AllValid(votes) {
		return ErrInvalidCard
	}

	nums := NumericValues(votes)
	average := Average(nums)
	room.lastAverage = average

	c.emitter.ToRoom(room.ID, EventVotingResults, VotingResultsEvent{
		Average:      average,
		Median:       Median(nums),
		Mode:         Mode(nums),
		Votes:        votes,
		HasConsensus: HasConsensus(nums),
	})
	return nil
}

// RepeatVoting сбрасывает голоса текущей истории
func (c *Controller) RepeatVoting(roomID string) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	room.clearVotes()
	c.emitter.ToRoom(room.ID, EventVotingRepeated, Notice{Value: "Voting has been reset"})
	return nil
}

// LeaderOverride принудительно выставляет всем участникам карту лидера
// и сразу подводит итог. После него консенсус гарантирован.
func (c *Controller) LeaderOverride(roomID string, actorID uuid.UUID, value string) error {
	leaderID, err := c.store.ResolveLeader(roomID)
	if err != nil {
		return ErrRoomNotFound
	}
	if actorID != leaderID {
		return ErrNotLeader
	}

	if _, err := ParseCard(value); err != nil {
		return ErrInvalidCard
	}

	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	for _, pid := range room.participantOrder {
		room.setVote(pid, Vote{Value: value, Participant: room.participants[pid]})
	}
	room.leaderOverride = true

	c.emitVotesLocked(room)
	return c.completeVotingLocked(room)
}

// NextStory сохраняет голоса раунда и двигает курсор. Запись в
// хранилище выполняется до продвижения: при отказе курсор не
// двигается и голоса не сбрасываются, действие можно повторить.
func (c *Controller) NextStory(roomID string) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.participants) == 0 || len(room.votes) < len(room.participants) {
		return ErrIncompleteVoting
	}

	votes := room.voteList()
	nums := NumericValues(votes)
	if !HasConsensus(nums) && !room.leaderOverride {
		return ErrNoConsensus
	}

	// нечисловой голос, поданный после переопределения, не дает продвинуться
	if len(nums) < len(votes) {
		return ErrInvalidCard
	}

	// консенсус или переопределение: все голоса совпадают
	final := nums[0]
	story := room.currentStory()

	batch := make([]VoteRecord, 0, len(votes))
	for _, id := range room.voteOrder {
		v := room.votes[id]
		batch = append(batch, VoteRecord{
			StoryID:    story.ID,
			UserID:     v.Participant.ID,
			CardValue:  v.Value,
			FinalValue: strconv.Itoa(final),
		})
	}

	if err := c.store.PersistVotes(roomID, batch); err != nil {
		return storageError(err)
	}

	room.history = append(room.history, HistoryRecord{
		StoryID:    story.ID,
		StoryTitle: story.Title,
		CardValue:  float64(final),
		RecordedAt: time.Now(),
	})
	c.emitter.ToRoom(roomID, EventVotingHistory, room.historyList())

	room.currentStoryIndex = (room.currentStoryIndex + 1) % len(room.stories)
	c.emitter.ToRoom(roomID, EventStoryChanged, StoryChangedEvent{
		Story:  room.currentStory(),
		IsLast: room.isLastStory(),
	})

	room.clearVotes()
	room.leaderOverride = false
	c.emitter.ToRoom(roomID, EventVotingRepeated, Notice{Value: "Voting has been reset"})

	index := room.currentStoryIndex
	go func() {
		if err := c.store.SetStoryIndex(roomID, index); err != nil {
			log.Printf("Failed to sync story index for %s: %v", roomID, err)
		}
	}()

	return nil
}

// StartSession переводит сессию в live. Только лидер.
// Статус рассылается всем подключенным, не только комнате,
// чтобы обновились списки сессий.
func (c *Controller) StartSession(roomID string, actorID uuid.UUID) error {
	leaderID, err := c.store.ResolveLeader(roomID)
	if err != nil {
		return ErrRoomNotFound
	}
	if actorID != leaderID {
		return ErrNotLeader
	}

	if err := c.store.MarkStarted(roomID); err != nil {
		return storageError(err)
	}
	if err := c.store.SetStoryIndex(roomID, 0); err != nil {
		return storageError(err)
	}

	if room, ok := c.registry.Get(roomID); ok {
		room.mu.Lock()
		room.currentStoryIndex = 0
		room.mu.Unlock()
	}

	c.emitter.ToRoom(roomID, EventSessionStarted, Notice{Value: "Session has started"})
	c.emitter.ToAll(EventSessionStatusChanged, SessionStatusChangedEvent{
		SessionID: roomID,
		Status:    "live",
	})
	return nil
}

// EndSession завершает сессию: дописывает историю, сохраняет
// оставшиеся голоса, отключает всех и чистит память. Отказ
// хранилища прерывает завершение, состояние комнаты не трогается.
func (c *Controller) EndSession(roomID string, caller Caller) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()

	story := room.currentStory()
	votes := room.voteList()
	nums := NumericValues(votes)

	// без голосов финальное среднее не выдумываем
	finalAverage := 0.0
	if len(nums) > 0 {
		finalAverage = Average(nums)
	}

	pending := append(room.historyList(), HistoryRecord{
		StoryID:    story.ID,
		StoryTitle: story.Title,
		CardValue:  room.lastAverage,
		RecordedAt: time.Now(),
	})

	if len(votes) > 0 {
		batch := make([]VoteRecord, 0, len(votes))
		for _, id := range room.voteOrder {
			v := room.votes[id]
			batch = append(batch, VoteRecord{
				StoryID:    story.ID,
				UserID:     v.Participant.ID,
				CardValue:  v.Value,
				FinalValue: strconv.FormatFloat(finalAverage, 'f', -1, 64),
			})
		}
		if err := c.store.PersistVotes(roomID, batch); err != nil {
			room.mu.Unlock()
			return storageError(err)
		}
	}

	if err := c.store.PersistHistory(roomID, pending); err != nil {
		room.mu.Unlock()
		return storageError(err)
	}

	room.history = pending
	c.emitter.ToRoom(roomID, EventSessionEnded, Notice{Value: "Session has ended"})

	participants := room.participantList()
	room.stopTimerLocked()
	room.mu.Unlock()

	for _, p := range participants {
		userID := p.ID
		go func() {
			if err := c.store.MarkLeft(roomID, userID); err != nil {
				log.Printf("Failed to record leave for %s in %s: %v", userID, roomID, err)
			}
		}()
	}

	c.emitter.CloseRoom(roomID)

	if err := c.store.MarkInactive(roomID); err != nil {
		log.Printf("Failed to deactivate session %s: %v", roomID, err)
	}

	c.registry.Remove(roomID)

	if caller != nil {
		caller.Emit(EventSuccess, Notice{Value: "Session ended successfully"})
	}
	return nil
}

// AcceptEstimate применяет внешнюю рекомендованную оценку как
// переопределение лидера: голоса сохраняются с этим значением,
// история дописывается, затем переход к следующей истории либо,
// на последней, завершение сессии.
func (c *Controller) AcceptEstimate(roomID string, actorID uuid.UUID, storyID uuid.UUID, points int, caller Caller) error {
	leaderID, err := c.store.ResolveLeader(roomID)
	if err != nil {
		return ErrRoomNotFound
	}
	if actorID != leaderID {
		return ErrNotLeader
	}

	if !IsValidCard(points) {
		return ErrInvalidCard
	}

	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()

	story := room.currentStory()
	if story.ID != storyID {
		room.mu.Unlock()
		return ErrStoryMismatch
	}
	if len(room.participants) == 0 {
		room.mu.Unlock()
		return ErrIncompleteVoting
	}

	value := strconv.Itoa(points)
	batch := make([]VoteRecord, 0, len(room.participants))
	for _, pid := range room.participantOrder {
		batch = append(batch, VoteRecord{
			StoryID:    story.ID,
			UserID:     pid,
			CardValue:  value,
			FinalValue: value,
		})
	}

	if err := c.store.PersistVotes(roomID, batch); err != nil {
		room.mu.Unlock()
		return storageError(err)
	}

	for _, pid := range room.participantOrder {
		room.setVote(pid, Vote{Value: value, Participant: room.participants[pid]})
	}
	room.leaderOverride = true
	room.lastAverage = float64(points)

	c.emitVotesLocked(room)

	votes := room.voteList()
	c.emitter.ToRoom(roomID, EventVotingResults, VotingResultsEvent{
		Average:      float64(points),
		Median:       points,
		Mode:         points,
		Votes:        votes,
		HasConsensus: true,
	})

	room.history = append(room.history, HistoryRecord{
		StoryID:    story.ID,
		StoryTitle: story.Title,
		CardValue:  float64(points),
		RecordedAt: time.Now(),
	})
	c.emitter.ToRoom(roomID, EventVotingHistory, room.historyList())

	if room.isLastStory() {
		room.mu.Unlock()
		return c.EndSession(roomID, caller)
	}

	room.currentStoryIndex++
	c.emitter.ToRoom(roomID, EventStoryChanged, StoryChangedEvent{
		Story:  room.currentStory(),
		IsLast: room.isLastStory(),
	})

	room.clearVotes()
	room.leaderOverride = false
	c.emitter.ToRoom(roomID, EventVotingRepeated, Notice{Value: "Voting has been reset"})

	index := room.currentStoryIndex
	room.mu.Unlock()

	go func() {
		if err := c.store.SetStoryIndex(roomID, index); err != nil {
			log.Printf("Failed to sync story index for %s: %v", roomID, err)
		}
	}()

	return nil
}

// CheckSessionStatus шлет вызывающему текущий статус сессии
func (c *Controller) CheckSessionStatus(roomID string, caller Caller) error {
	status, err := c.store.SessionStatus(roomID)
	if err != nil {
		return ErrRoomNotFound
	}
	caller.Emit(EventSessionStatus, SessionStatusEvent{IsStarted: status.IsStarted})
	return nil
}

// SendMessage сохраняет сообщение чата и рассылает его комнате
func (c *Controller) SendMessage(roomID string, p Participant, message string) error {
	saved, err := c.store.AppendChat(roomID, p, message)
	if err != nil {
		return storageError(err)
	}

	c.emitter.ToRoom(roomID, EventChatMessage, ChatMessageEvent{
		Message:   saved.Message,
		Sender:    saved.Sender,
		Timestamp: saved.Timestamp,
	})
	return nil
}

// teardown зачищает брошенную комнату; вызывается рипером
func (c *Controller) teardown(room *Room) {
	room.mu.Lock()
	// комната могла ожить между проверкой рипера и зачисткой
	if room.emptySince == nil || len(room.participants) > 0 {
		room.mu.Unlock()
		return
	}
	room.stopTimerLocked()
	room.mu.Unlock()

	c.emitter.CloseRoom(room.ID)

	if err := c.store.MarkInactive(room.ID); err != nil {
		log.Printf("Failed to deactivate session %s: %v", room.ID, err)
	}

	c.registry.Remove(room.ID)
	log.Printf("Room %s reaped after inactivity", room.ID)
}

func (c *Controller) emitParticipantListLocked(room *Room) {
	participants := room.participantList()
	c.emitter.ToRoom(room.ID, EventParticipantList, participants)
	c.emitter.ToAll(EventParticipantCount, ParticipantCountEvent{
		RoomID: room.ID,
		Count:  len(participants),
	})
}

func (c *Controller) emitVotesLocked(room *Room) {
	c.emitter.ToRoom(room.ID, EventVotesUpdated, VotesUpdatedEvent{
		Votes:        room.voteList(),
		Participants: room.participantList(),
	})
}
