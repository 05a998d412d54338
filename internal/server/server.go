// Package server wires the application together: database, blob store,
// services, handlers, routes, and graceful shutdown. This is the
// composition root — every dependency is assembled here and nowhere
// else.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"assistor/internal/auth"
	"assistor/internal/blob"
	"assistor/internal/config"
	"assistor/internal/handler"
	"assistor/internal/middleware"
	sqliteRepo "assistor/internal/repository/sqlite"
	"assistor/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown (the database pool; the blob store holds no handles).
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: storage → services →
// handlers → routes. Each layer receives only what it needs; the
// handlers never see the database and the services never see HTTP.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	blobs, err := blob.NewStore(cfg.UploadDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening blob store: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring tokens: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(blobs, tokens)

	return s, nil
}

func (s *Server) setupRoutes(blobs *blob.Store, tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService(s.cfg.BcryptCost)

	// One sqlite.DB value implements every repository interface.
	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)
	courseService := service.NewCourseService(s.db, s.db, s.db, s.db, s.db, s.db, blobs, s.logger)
	noteService := service.NewNoteService(s.db, s.db, s.logger)
	fileService := service.NewFileService(s.db, s.db, blobs, s.logger)
	linkService := service.NewLinkService(s.db, s.db, s.logger)
	instructorService := service.NewInstructorService(s.db, s.db, s.logger)
	reminderService := service.NewReminderService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.cfg.TokenTTL, s.logger)
	courseHandler := handler.NewCourseHandler(courseService, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, s.logger)
	fileHandler := handler.NewFileHandler(fileService, s.logger)
	linkHandler := handler.NewLinkHandler(linkService, s.logger)
	instructorHandler := handler.NewInstructorHandler(instructorService, s.logger)
	reminderHandler := handler.NewReminderHandler(reminderService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// The only routes reachable without a session.
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Everything else requires a valid session cookie.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)
			r.Get("/dashboard", courseHandler.HandleDashboard)

			r.Get("/courses", courseHandler.HandleList)
			r.Post("/courses", courseHandler.HandleCreate)
			r.Get("/courses/{courseID}", courseHandler.HandleGet)
			r.Put("/courses/{courseID}", courseHandler.HandleUpdate)
			r.Delete("/courses/{courseID}", courseHandler.HandleDelete)

			r.Get("/courses/{courseID}/notes", noteHandler.HandleList)
			r.Post("/courses/{courseID}/notes", noteHandler.HandleCreate)
			r.Get("/courses/{courseID}/notes/{noteID}", noteHandler.HandleGet)
			r.Put("/courses/{courseID}/notes/{noteID}", noteHandler.HandleUpdate)
			r.Delete("/courses/{courseID}/notes/{noteID}", noteHandler.HandleDelete)

			r.Get("/courses/{courseID}/files", fileHandler.HandleList)
			r.Post("/courses/{courseID}/files", fileHandler.HandleUpload)
			r.Get("/courses/{courseID}/files/{fileID}", fileHandler.HandleGet)
			r.Get("/courses/{courseID}/files/{fileID}/download", fileHandler.HandleDownload)
			r.Put("/courses/{courseID}/files/{fileID}", fileHandler.HandleUpdate)
			r.Delete("/courses/{courseID}/files/{fileID}", fileHandler.HandleDelete)

			r.Get("/courses/{courseID}/links", linkHandler.HandleList)
			r.Post("/courses/{courseID}/links", linkHandler.HandleCreate)
			r.Get("/courses/{courseID}/links/{linkID}", linkHandler.HandleGet)
			r.Delete("/courses/{courseID}/links/{linkID}", linkHandler.HandleDelete)

			r.Get("/courses/{courseID}/instructors", instructorHandler.HandleList)
			r.Post("/courses/{courseID}/instructors", instructorHandler.HandleCreate)
			r.Get("/courses/{courseID}/instructors/{instructorID}", instructorHandler.HandleGet)
			r.Delete("/courses/{courseID}/instructors/{instructorID}", instructorHandler.HandleDelete)

			r.Get("/reminders", reminderHandler.HandleList)
			r.Post("/reminders", reminderHandler.HandleCreate)
			r.Get("/reminders/{reminderID}", reminderHandler.HandleGet)
			r.Put("/reminders/{reminderID}", reminderHandler.HandleUpdate)
			r.Delete("/reminders/{reminderID}", reminderHandler.HandleDelete)
		})
	})
}

// Handler exposes the router so tests can drive the full middleware
// and route stack through httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without serving. Start handles
// this itself; tests that never call Start use Close.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DatabasePath),
			slog.String("uploads", s.cfg.UploadDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
