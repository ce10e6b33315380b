package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/poker-live/internal/database"
	"github.com/thereayou/poker-live/internal/handlers"
	"github.com/thereayou/poker-live/internal/poker"
	ws "github.com/thereayou/poker-live/internal/websocket"
	"github.com/thereayou/poker-live/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Controller *poker.Controller
	Reaper     *poker.Reaper
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	registry := poker.NewRegistry()
	controller := poker.NewController(registry, dbConn, hub)
	reaper := poker.NewReaper(controller)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn)
	sessionH := handlers.NewSessionHandler(dbConn, hub)
	pokerH := handlers.NewPokerHandler(dbConn, controller)
	wsH := handlers.NewWebSocketHandler(hub, pokerH)

	router := gin.Default()
	APIEndpoints(router, authH, userH, sessionH, wsH, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Controller: controller,
		Reaper:     reaper,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	go s.Reaper.Run()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
