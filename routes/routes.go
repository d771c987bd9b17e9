package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/spikeline/tournament-system/handlers"
	"github.com/spikeline/tournament-system/middleware"
)

// SetupRoutes mounts the full API surface. Reads are public; everything that
// mutates tournament structure requires an admin token. Score entry by
// participants is deliberately unauthenticated, gated by the event-date
// window in the services instead.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	registrationHandler *handlers.RegistrationHandler,
	matchHandler *handlers.MatchHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)

		r.Route("/{tournamentID}/divisions/{divisionID}", func(r chi.Router) {
			r.Get("/registrations", registrationHandler.ListByDivision)
			r.Post("/registrations", registrationHandler.Register)

			r.Get("/matches", matchHandler.ListByDivision)
			r.Get("/standings", matchHandler.Standings)
			r.Get("/bracket", bracketHandler.Get)

			// Admin-only structure changes.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.RequireAdmin)

				r.Post("/matches", matchHandler.Create)
				r.Post("/matches/generate", matchHandler.GenerateSchedule)
				r.Patch("/matches/resequence", matchHandler.Resequence)

				r.Post("/bracket", bracketHandler.Generate)
				r.Delete("/bracket", bracketHandler.Reset)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
			r.Post("/{tournamentID}/divisions", tournamentHandler.CreateDivision)
			r.Delete("/{tournamentID}/divisions/{divisionID}", tournamentHandler.DeleteDivision)
		})
	})

	router.Route("/registrations/{registrationID}", func(r chi.Router) {
		// Captains edit their own entry from the public signup link.
		r.Put("/", registrationHandler.Update)
		r.Post("/photo", registrationHandler.UploadPhoto)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Patch("/seed", registrationHandler.SetSeed)
			r.Patch("/finish", registrationHandler.SetFinish)
			r.Delete("/", registrationHandler.Delete)
		})
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Post("/score/player", matchHandler.SubmitPlayerScore)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/score", matchHandler.SubmitAdminScore)
			r.Delete("/", matchHandler.Delete)
		})
	})

	router.Route("/bracket-matches/{matchID}", func(r chi.Router) {
		r.Post("/score/player", bracketHandler.SubmitPlayerScore)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/score", bracketHandler.SubmitAdminScore)
		})
	})

	router.Get("/ws/divisions/{divisionID}", webSocketHandler.ServeWs)
}
