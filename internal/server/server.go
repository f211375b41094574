package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/routinelog/apiserver/config"
	"github.com/routinelog/apiserver/internal/db"
	"github.com/routinelog/apiserver/internal/handlers"
	"github.com/routinelog/apiserver/internal/services"
	"github.com/routinelog/apiserver/internal/session"
	"github.com/routinelog/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	exerciseRepo := store.NewExerciseRepository(dbConn)
	routineRepo := store.NewRoutineRepository(dbConn)

	userService := services.NewUserService(userRepo)
	exerciseService := services.NewExerciseService(exerciseRepo)
	routineService := services.NewRoutineService(routineRepo)

	secret := strings.TrimSpace(cfg.Session.Secret)
	if secret == "" {
		_ = dbConn.Close()
		return nil, errors.New("SESSION_SECRET is required")
	}

	sessionManager := session.NewManager(secret, time.Duration(cfg.Session.TTLHours)*time.Hour)
	requireSession := handlers.RequireSession(sessionManager)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessionManager)
		handlers.AccountRouter(r, userService, requireSession)
		handlers.RoutineRouter(r, routineService, requireSession, cfg.RoutineAccess)
		handlers.ExerciseRouter(r, exerciseService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
