package dto

import "github.com/google/uuid"

// Payload-структуры для входящих WebSocket сообщений

type RoomPayload struct {
	Room string `json:"room"`
}

type VotePayload struct {
	Room string `json:"room"`
	Vote string `json:"vote"`
}

type TimerPayload struct {
	Room     string `json:"room"`
	Duration int    `json:"duration"`
}

type ChatPayload struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type EstimatePayload struct {
	Room    string    `json:"room"`
	StoryID uuid.UUID `json:"storyId"`
	Points  int       `json:"points"`
}

// REST-структуры

type CreateSessionRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Code        string               `json:"code"`
	Capacity    int                  `json:"capacity"`
	Stories     []CreateStoryRequest `json:"stories" binding:"required,min=1,dive"`
}

type CreateStoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}
