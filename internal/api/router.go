package api

import (
	"net/http"

	_ "files-manager/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", TokenHeader},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello my friend!"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.ServeWsHandler)

	r.Get("/status", s.StatusHandler)
	r.Get("/stats", s.StatsHandler)

	r.Post("/users", s.CreateUserHandler)
	r.Get("/users/me", s.GetMeHandler)

	r.Get("/connect", s.ConnectHandler)
	r.Get("/disconnect", s.DisconnectHandler)

	r.Get("/files/{id}/data", s.FileDataHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Post("/files", s.UploadFileHandler)
		r.Get("/files", s.ListFilesHandler)
		r.Get("/files/{id}", s.GetFileHandler)
		r.Put("/files/{id}/publish", s.PublishFileHandler)
		r.Put("/files/{id}/unpublish", s.UnpublishFileHandler)
	})

	return r
}
