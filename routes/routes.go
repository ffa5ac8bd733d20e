package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/tournament-progression/docs"
	"github.com/Dosada05/tournament-progression/handlers"
	"github.com/Dosada05/tournament-progression/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Competitions *handlers.CompetitionHandler
	Matches      *handlers.MatchHandler
	Progression  *handlers.ProgressionHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// The websocket route stays outside the timeout group: connections are long lived.
	router.Get("/ws/competitions/{competitionID}", h.WebSocket.ServeWs)

	authenticate := middleware.Authenticate(opts.JWTSecret)
	organizers := middleware.RequireRole(middleware.RoleOrganizer, middleware.RoleAdmin)

	router.Route("/api", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/levels/{xp}", h.Progression.Level)
		r.Get("/achievements", h.Progression.Achievements)

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.Competitions.List)
			r.Get("/{competitionID}", h.Competitions.Overview)
			r.Get("/{competitionID}/standings", h.Competitions.Standings)
			r.Get("/{competitionID}/stats", h.Competitions.Stats)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)
				r.Post("/", h.Competitions.Create)
				r.Post("/{competitionID}/participants", h.Competitions.AddParticipant)
				r.Post("/{competitionID}/schedule", h.Competitions.GenerateSchedule)
				r.Post("/{competitionID}/byes", h.Competitions.AdvanceByes)
				r.Post("/{competitionID}/knockout", h.Competitions.SeedKnockout)
			})
		})

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.Matches.Get)
			r.Get("/events", h.Matches.ListEvents)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)
				r.Post("/finalize", h.Matches.Finalize)
				r.Post("/events", h.Matches.RecordEvent)
				r.Post("/cards", h.Matches.RecordCard)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, organizers)
			r.Delete("/events/{eventID}", h.Matches.ReverseEvent)
			r.Delete("/cards/{cardID}", h.Matches.ReverseCard)
			r.Post("/competitors", h.Progression.CreateCompetitor)
			r.Post("/participants/{participantID}/roster", h.Progression.AddRosterEntry)
		})

		r.Get("/competitors/{competitorID}/progress", h.Progression.GetProgress)
	})
}
