// Package server provides the HTTP server for the REST API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nourishly/v1/internal/infrastructure/config"
	"github.com/nourishly/v1/internal/infrastructure/http/handlers"
	"github.com/nourishly/v1/internal/infrastructure/http/middleware"
	"github.com/nourishly/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	router         *chi.Mux
	server         *http.Server
	pantryService  inbound.PantryService
	kitchenService inbound.KitchenService
	chatService    inbound.ChatService
	accountService inbound.AccountService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pantryService inbound.PantryService,
	kitchenService inbound.KitchenService,
	chatService inbound.ChatService,
	accountService inbound.AccountService,
) *Server {
	s := &Server{
		config:         cfg,
		logger:         logger,
		pantryService:  pantryService,
		kitchenService: kitchenService,
		chatService:    chatService,
		accountService: accountService,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(chimiddleware.Compress(5))

	health := handlers.NewHealthHandler(s.config.App.Version)
	r.Get("/health", health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	pantry := handlers.NewPantryHandlers(s.pantryService, s.logger)
	kitchen := handlers.NewKitchenHandlers(s.kitchenService, s.logger)
	chat := handlers.NewChatHandlers(s.chatService, s.logger)
	account := handlers.NewAccountHandlers(s.accountService, s.logger)

	// Request-scoped timeout for everything except the streaming chat,
	// which stays open for the duration of the model response.
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))

		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", pantry.ListItems)
			r.Post("/", pantry.AddItem)
			r.Get("/view", pantry.InventoryView)
			r.Get("/suggest-category", pantry.SuggestCategory)
			r.Post("/scan", pantry.ScanItem)
			r.Put("/{id}", pantry.UpdateItem)
			r.Delete("/{id}", pantry.DeleteItem)
			r.Post("/{id}/decrement", pantry.DecrementItem)
		})

		r.Route("/kitchen", func(r chi.Router) {
			r.Post("/cook", kitchen.Cook)
			r.Get("/recipes", kitchen.SavedRecipes)
			r.Post("/recipes", kitchen.SaveRecipe)
			r.Delete("/recipes/{id}", kitchen.ForgetRecipe)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", account.GetProfile)
			r.Put("/stats", account.UpdateDailyStats)
			r.Put("/settings", account.UpdateSettings)
			r.Post("/onboarding", account.CompleteOnboarding)
		})
	})

	r.Post("/chat/stream", chat.Stream)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
