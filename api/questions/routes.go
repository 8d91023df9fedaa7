package questions

import (
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/admins"
	"github.com/matheusot/enquete/api/identity"
	"github.com/matheusot/enquete/api/middlewares"
)

func SetupRoutes(r *chi.Mux, db *pgxpool.Pool) {

	questionsRouter := chi.NewRouter()

	store := NewQuestionStore(db)
	adminStore := admins.NewAdminStore(db)
	provider := identity.NewSessionProvider()

	handler := Handler{
		Store: store,
	}

	questionsRouter.Use(middlewares.AdminOnly(provider, adminStore))

	questionsRouter.Get("/", handler.ListQuestionsHandler)
	questionsRouter.Post("/", handler.CreateQuestionHandler)
	questionsRouter.Get("/{questionID}", handler.GetQuestionHandler)
	questionsRouter.Patch("/{questionID}", handler.UpdateQuestionHandler)
	questionsRouter.Delete("/{questionID}", handler.DeleteQuestionHandler)

	r.Mount("/admin/questions", questionsRouter)
}
