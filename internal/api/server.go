package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tixswap/internal/auth"
	"tixswap/internal/cache"
	"tixswap/internal/config"
	"tixswap/internal/database"
	"tixswap/internal/handlers"
	"tixswap/internal/logger"
	"tixswap/internal/messaging"
	"tixswap/internal/middleware"
	"tixswap/internal/monitoring"
	"tixswap/internal/repository"
	"tixswap/internal/service"
)

// Server wires the HTTP API together
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer builds a fully wired server
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Valkey is optional; without it rate limiting is off.
	var valkeyClient *cache.ValkeyClient
	if cfg.Valkey.Enabled {
		valkeyClient, err = cache.NewValkeyClient(cfg.Valkey)
		if err != nil {
			logger.Fatal("Failed to connect to Valkey", "error", err)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewPasswordHasher(0)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, jwtService, hasher)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(monitoring.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.RateLimit(s.valkey, "auth", s.config.AuthRateLimit, s.config.AuthRateWindow))
		{
			authRoutes.POST("/signup", h.Signup)
			authRoutes.POST("/login", h.Login)
		}

		tickets := api.Group("/tickets")
		tickets.Use(middleware.JWTAuth(s.services.Auth))
		{
			tickets.POST("", h.CreateTicket)
			tickets.GET("", h.ListTickets)
			tickets.GET("/my", h.ListMyTickets)
			tickets.GET("/requested", h.ListRequestedTickets)
			tickets.GET("/:id", h.GetTicket)
			tickets.PUT("/:id", h.UpdateTicket)
			tickets.DELETE("/:id", h.DeleteTicket)

			tickets.POST("/:id/request", h.RequestTicket)
			tickets.DELETE("/:id/request", h.CancelRequest)
			tickets.POST("/:id/accept", h.AcceptRequest)
			tickets.POST("/:id/reject", h.RejectRequest)
			tickets.POST("/:id/sold", h.MarkSold)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", monitoring.Handler())
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.Health(c.Request.Context())
	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "tixswap-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests and the HTTP server
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes external connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
