package intake

import (
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/queue"
)

// SetupRoutes registers the public intake endpoints. No auth middleware here,
// respondents fill questionnaires anonymously.
func SetupRoutes(r *chi.Mux, db *pgxpool.Pool, q queue.Queue) {

	store := NewIntakeStore(db)

	handler := Handler{
		Store: store,
		Queue: q,
	}

	r.Get("/q/{slug}", handler.GetQuestionnaireHandler)
	r.Post("/respondents", handler.CreateRespondentHandler)
	r.Post("/progress", handler.ProgressHandler)
	r.Post("/answers", handler.CreateAnswerHandler)
}
