package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kursapi/internal/kurs/handler"
)

func NewRouter(kursHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Post("/api/v1/kurs/ingest", kursHandler.Ingest)
	router.Get("/api/v1/kurs", kursHandler.GetByDateRange)
	router.Get("/api/v1/kurs/{symbol:[A-Za-z]{2,6}}", kursHandler.GetBySymbol)
	router.Post("/api/v1/kurs", kursHandler.Create)
	router.Put("/api/v1/kurs", kursHandler.Update)
	router.Delete("/api/v1/kurs/{date}", kursHandler.DeleteByDate)
	return router
}
