package handlers

import (
	"encoding/json"
	"log"

	"github.com/thereayou/poker-live/internal/handlers/dto"
	"github.com/thereayou/poker-live/internal/models"
	"github.com/thereayou/poker-live/internal/poker"
	"github.com/thereayou/poker-live/internal/websocket"
)

// Типы входящих сообщений
const (
	msgJoinRoom           = "join-room"
	msgLeaveRoom          = "leave-room"
	msgSendMessage        = "send-message"
	msgSubmitVote         = "submit-vote"
	msgCompleteVoting     = "complete-voting"
	msgRepeatVoting       = "repeat-voting"
	msgLeaderOverride     = "leader-override-vote"
	msgNextStory          = "next-story"
	msgStartSession       = "start-session"
	msgEndSession         = "end-session"
	msgCheckStatus        = "check-session-status"
	msgStartTimer         = "start-timer"
	msgStopTimer          = "stop-timer"
	msgRequestTimerUpdate = "request-timer-update"
	msgAcceptEstimate     = "accept-estimate"
)

// UserDirectory отдает профили пользователей для снапшотов участников
type UserDirectory interface {
	GetUser(id string) (*models.User, error)
}

// PokerHandler переводит WebSocket сообщения в действия контроллера.
// Ошибки контроллера возвращаются наверх и уходят только вызывающему.
type PokerHandler struct {
	users      UserDirectory
	controller *poker.Controller
}

func NewPokerHandler(users UserDirectory, controller *poker.Controller) *PokerHandler {
	return &PokerHandler{
		users:      users,
		controller: controller,
	}
}

func (h *PokerHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch string(msg.Type) {
	case msgJoinRoom:
		return h.handleJoin(client, msg)

	case msgLeaveRoom:
		return h.handleLeave(client, msg)

	case msgSendMessage:
		var payload dto.ChatPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return websocket.ErrInvalidMessage
		}
		if !client.IsInRoom(payload.Room) {
			return websocket.ErrUserNotInRoom
		}
		p, err := h.participant(client)
		if err != nil {
			return err
		}
		return h.controller.SendMessage(payload.Room, p, payload.Message)

	case msgSubmitVote:
		var payload dto.VotePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return websocket.ErrInvalidMessage
		}
		if !client.IsInRoom(payload.Room) {
			return websocket.ErrUserNotInRoom
		}
		p, err := h.participant(client)
		if err != nil {
			return err
		}
		return h.controller.SubmitVote(payload.Room, p, payload.Vote)

	case msgCompleteVoting:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.CompleteVoting(room)

	case msgRepeatVoting:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.RepeatVoting(room)

	case msgLeaderOverride:
		var payload dto.VotePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return websocket.ErrInvalidMessage
		}
		if !client.IsInRoom(payload.Room) {
			return websocket.ErrUserNotInRoom
		}
		return h.controller.LeaderOverride(payload.Room, client.UserID, payload.Vote)

	case msgNextStory:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.NextStory(room)

	case msgStartSession:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.StartSession(room, client.UserID)

	case msgEndSession:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.EndSession(room, client)

	case msgCheckStatus:
		room, err := roomFrom(msg)
		if err != nil {
			return err
		}
		return h.controller.CheckSessionStatus(room, client)

	case msgStartTimer:
		var payload dto.TimerPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return websocket.ErrInvalidMessage
		}
		if !client.IsInRoom(payload.Room) {
			return websocket.ErrUserNotInRoom
		}
		return h.controller.StartTimer(payload.Room, payload.Duration)

	case msgStopTimer:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.StopTimer(room)

	case msgRequestTimerUpdate:
		room, err := h.memberRoom(client, msg)
		if err != nil {
			return err
		}
		return h.controller.RequestTimerUpdate(room, client)

	case msgAcceptEstimate:
		var payload dto.EstimatePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return websocket.ErrInvalidMessage
		}
		if !client.IsInRoom(payload.Room) {
			return websocket.ErrUserNotInRoom
		}
		return h.controller.AcceptEstimate(payload.Room, client.UserID, payload.StoryID, payload.Points, client)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		return nil
	}
}

// HandleDisconnect выводит участника из его комнат при обрыве соединения
func (h *PokerHandler) HandleDisconnect(client *websocket.Client) {
	for _, room := range client.GetRooms() {
		if err := h.controller.Leave(room, client.UserID); err != nil {
			log.Printf("Failed to leave room %s on disconnect: %v", room, err)
		}
	}
}

func (h *PokerHandler) handleJoin(client *websocket.Client, msg *websocket.Message) error {
	room, err := roomFrom(msg)
	if err != nil {
		return err
	}

	p, err := h.participant(client)
	if err != nil {
		return err
	}

	// соединение входит в комнату до рассылок контроллера,
	// иначе вошедший не получит participant-list
	client.Hub.JoinRoom(client, room)
	if err := h.controller.Join(room, p, client); err != nil {
		client.Hub.LeaveRoom(client, room)
		return err
	}
	return nil
}

func (h *PokerHandler) handleLeave(client *websocket.Client, msg *websocket.Message) error {
	room, err := h.memberRoom(client, msg)
	if err != nil {
		return err
	}

	client.Hub.LeaveRoom(client, room)
	return h.controller.Leave(room, client.UserID)
}

// memberRoom извлекает комнату и требует членства соединения в ней
func (h *PokerHandler) memberRoom(client *websocket.Client, msg *websocket.Message) (string, error) {
	room, err := roomFrom(msg)
	if err != nil {
		return "", err
	}
	if !client.IsInRoom(room) {
		return "", websocket.ErrUserNotInRoom
	}
	return room, nil
}

// participant собирает снапшот участника из профиля пользователя
func (h *PokerHandler) participant(client *websocket.Client) (poker.Participant, error) {
	user, err := h.users.GetUser(client.UserID.String())
	if err != nil {
		return poker.Participant{}, websocket.ErrUnauthorized
	}

	return poker.Participant{
		ID:     user.ID,
		Name:   user.Username,
		Email:  user.Email,
		Avatar: user.AvatarURL,
		Role:   user.Role,
	}, nil
}

func roomFrom(msg *websocket.Message) (string, error) {
	if msg.Room != "" {
		return msg.Room, nil
	}

	var payload dto.RoomPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &payload); err == nil && payload.Room != "" {
			return payload.Room, nil
		}
	}
	return "", websocket.ErrInvalidMessage
}
