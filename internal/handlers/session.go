package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/poker-live/internal/database"
	"github.com/thereayou/poker-live/internal/handlers/dto"
	"github.com/thereayou/poker-live/internal/middleware"
	"github.com/thereayou/poker-live/internal/models"
	ws "github.com/thereayou/poker-live/internal/websocket"
)

type SessionHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewSessionHandler(db *database.Database, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{db: db, hub: hub}
}

// CreateSession создает сессию с историями; создатель становится лидером
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 8
	}

	code := req.Code
	if code != "" {
		code = "POKER-" + code
	}

	session := &models.Session{
		Name:        req.Name,
		Description: req.Description,
		Code:        code,
		LeaderID:    userID,
		Status:      models.SessionStatusWaiting,
		IsActive:    true,
		Capacity:    capacity,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateSession(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	stories := make([]models.Story, len(req.Stories))
	for i, s := range req.Stories {
		stories[i] = models.Story{
			Title:       s.Title,
			Description: s.Description,
			Priority:    s.Priority,
			CreatedAt:   time.Now(),
		}
	}

	if err := h.db.AddStories(session.ID, stories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add stories"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "session created", "session": session})
}

// ListSessions возвращает активные сессии
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.db.ListActiveSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.db.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ActiveParticipants возвращает пользователей, подключенных к комнате сессии
func (h *SessionHandler) ActiveParticipants(c *gin.Context) {
	users := h.hub.RoomUsers(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"participants": users, "count": len(users)})
}

// GetHistory возвращает сохраненную историю оценок сессии
func (h *SessionHandler) GetHistory(c *gin.Context) {
	records, err := h.db.GetSessionHistory(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": records})
}
