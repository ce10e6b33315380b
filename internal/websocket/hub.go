package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypeConnect    MessageType = "connect"
	TypeDisconnect MessageType = "disconnect"
	TypePing       MessageType = "ping"
	TypePong       MessageType = "pong"
	TypeError      MessageType = "error"
	TypeSuccess    MessageType = "success"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Room      string          `json:"room,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Rooms  map[string]bool
	Hub    *Hub
	mu     sync.RWMutex
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты в комнатах, ключ — идентификатор сессии
	rooms map[string]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[string]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		for room := range client.Rooms {
			h.removeFromRoomUnsafe(client, room)
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// JoinRoom добавляет клиента в комнату
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[uuid.UUID]*Client)
	}

	h.rooms[room][client.ID] = client
	client.mu.Lock()
	client.Rooms[room] = true
	client.mu.Unlock()
}

// LeaveRoom удаляет клиента из комнаты
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, room)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, room string) {
	if clients, ok := h.rooms[room]; ok {
		if _, ok := clients[client.ID]; ok {
			delete(clients, client.ID)
			client.mu.Lock()
			delete(client.Rooms, room)
			client.mu.Unlock()

			if len(clients) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// ToRoom отправляет событие всем клиентам комнаты
func (h *Hub) ToRoom(room string, event string, data interface{}) {
	payload, err := encodeMessage(room, event, data)
	if err != nil {
		log.Printf("Failed to encode %s for room %s: %v", event, room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[room] {
		select {
		case client.Send <- payload:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// ToAll отправляет событие всем подключенным клиентам.
// Используется для глобальных уведомлений вроде session-status-changed.
func (h *Hub) ToAll(event string, data interface{}) {
	payload, err := encodeMessage("", event, data)
	if err != nil {
		log.Printf("Failed to encode %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// CloseRoom принудительно отключает все соединения комнаты
func (h *Hub) CloseRoom(room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	for _, client := range clients {
		client.mu.Lock()
		delete(client.Rooms, room)
		client.mu.Unlock()
		client.Conn.Close()
	}

	delete(h.rooms, room)
}

// RoomUsers возвращает список пользователей в комнате
func (h *Hub) RoomUsers(room string) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uuid.UUID]bool)
	for _, client := range h.rooms[room] {
		userMap[client.UserID] = true
	}

	users := make([]uuid.UUID, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func encodeMessage(room string, event string, data interface{}) ([]byte, error) {
	msg := Message{
		Type:      MessageType(event),
		Room:      room,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = jsonData
	}

	return json.Marshal(msg)
}
