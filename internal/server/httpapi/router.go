package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(time.Minute))

	// public
	r.Post("/user", s.register)
	r.Post("/user/login", s.login)

	// authenticated
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Put("/user/{user_id}", s.updatePassword)

		r.Route("/event-types", func(r chi.Router) {
			r.Get("/", s.listEventTypes)
			r.Post("/", s.createEventType)
			r.Get("/{id}", s.getEventType)
			r.Put("/{id}", s.updateEventType)
			r.Delete("/{id}", s.deleteEventType)
		})

		r.Route("/journal-entries", func(r chi.Router) {
			r.Get("/", s.searchJournalEntries)
			r.Post("/", s.createJournalEntry)
			r.Get("/{id}", s.getJournalEntry)
			r.Put("/{id}", s.updateJournalEntry)
			r.Delete("/{id}", s.deleteJournalEntry)
		})
	})

	return r
}
