package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/categories"
	"github.com/matheusot/enquete/api/intake"
	"github.com/matheusot/enquete/api/jsonutil"
	"github.com/matheusot/enquete/api/questionnaires"
	"github.com/matheusot/enquete/api/questions"
	"github.com/matheusot/enquete/api/reports"
	"github.com/matheusot/enquete/queue"
	"net/http"
)

func Routes(q queue.Queue, pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {

		jsonutil.WriteJSONResponse(w, "hello from enquete", http.StatusOK)
	})

	categories.SetupRoutes(r, pool)
	questions.SetupRoutes(r, pool)
	questionnaires.SetupRoutes(r, pool)
	reports.SetupRoutes(r, pool)
	intake.SetupRoutes(r, pool, q)

	return r
}
