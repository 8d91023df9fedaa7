package questionnaires

import (
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/admins"
	"github.com/matheusot/enquete/api/identity"
	"github.com/matheusot/enquete/api/middlewares"
)

func SetupRoutes(r *chi.Mux, db *pgxpool.Pool) {

	questionnairesRouter := chi.NewRouter()

	store := NewQuestionnaireStore(db)
	adminStore := admins.NewAdminStore(db)
	provider := identity.NewSessionProvider()

	handler := Handler{
		Store: store,
	}

	questionnairesRouter.Use(middlewares.AdminOnly(provider, adminStore))

	questionnairesRouter.Get("/", handler.ListQuestionnairesHandler)
	questionnairesRouter.Post("/", handler.CreateQuestionnaireHandler)
	questionnairesRouter.Get("/{questionnaireID}", handler.GetQuestionnaireHandler)
	questionnairesRouter.Patch("/{questionnaireID}", handler.UpdateQuestionnaireHandler)
	questionnairesRouter.Get("/{questionnaireID}/questions", handler.ListQuestionIDsHandler)
	questionnairesRouter.Put("/{questionnaireID}/questions", handler.ReplaceQuestionsHandler)
	questionnairesRouter.Put("/{questionnaireID}/intake-fields", handler.UpdateIntakeFieldsHandler)

	r.Mount("/admin/questionnaires", questionnairesRouter)
}
