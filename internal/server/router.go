package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/poker-live/internal/handlers"
	"github.com/thereayou/poker-live/internal/middleware"
	"github.com/thereayou/poker-live/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	sessionH *handlers.SessionHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/me", userH.GetMe)
		api.PATCH("/me", userH.UpdateMe)

		api.POST("/sessions", sessionH.CreateSession)
		api.GET("/sessions", sessionH.ListSessions)
		api.GET("/sessions/:id", sessionH.GetSession)
		api.GET("/sessions/:id/participants", sessionH.ActiveParticipants)
		api.GET("/sessions/:id/history", sessionH.GetHistory)
	}

	// WebSocket
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
