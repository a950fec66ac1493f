// Package httpapi exposes the journalkeeper operations over HTTP/JSON.
// Handlers are thin: they parse requests, resolve the caller identity and
// delegate to the services; every error is recovered into a structured
// response at this boundary.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/logging"
	"github.com/dmitrijs2005/journalkeeper/internal/server/config"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/dmitrijs2005/journalkeeper/internal/server/services"
)

// userService is the part of services.UserService the handlers call.
type userService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	ValidateToken(token string) (string, error)
}

// journalService is the part of services.JournalService the handlers call.
type journalService interface {
	FindAllEventTypes(ctx context.Context, userID string) ([]*models.EventType, error)
	FindEventTypeByID(ctx context.Context, userID, id string) (*models.EventType, error)
	CreateEventType(ctx context.Context, userID, name string, tags []string) (string, error)
	UpdateEventType(ctx context.Context, userID, id, name string, tags []string) error
	DeleteEventType(ctx context.Context, userID, id string) error

	FindJournalEntryByID(ctx context.Context, userID, id string) (*models.JournalEntry, error)
	FindJournalEntries(ctx context.Context, userID string, filter *models.SearchFilter) ([]*models.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, userID, eventTypeID string, description *string, tags []string, createdAt *time.Time) (string, error)
	UpdateJournalEntry(ctx context.Context, userID, id string, description *string, tags []string) error
	DeleteJournalEntry(ctx context.Context, userID, id string) error
}

// Server is the HTTP front of the application.
type Server struct {
	address string
	logger  logging.Logger
	users   userService
	journal journalService
}

// NewServer constructs a Server around the given services.
func NewServer(cfg *config.Config, l logging.Logger, us userService, js journalService) *Server {
	return &Server{
		address: cfg.EndpointAddr,
		logger:  l.With("module", "http_server"),
		users:   us,
		journal: js,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
