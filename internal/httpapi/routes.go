package httpapi

import (
	"net/http"
	"time"

	"github.com/DoyleJ11/hoops-draft-backend/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func SetupRoutes(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	// Public routes
	r.Post("/lobbies", CreateLobby(d))
	r.Route("/lobbies/{code}", func(r chi.Router) {
		r.Get("/", GetLobby(d))
		r.Delete("/", DeleteLobby(d))
		r.Get("/export", ExportText(d))
		r.Post("/discord", SendToDiscord(d))
	})
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, d.AllowedOrigins, d.Log))
	return r
}
