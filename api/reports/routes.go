package reports

import (
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/admins"
	"github.com/matheusot/enquete/api/identity"
	"github.com/matheusot/enquete/api/middlewares"
)

func SetupRoutes(r *chi.Mux, db *pgxpool.Pool) {

	reportsRouter := chi.NewRouter()

	store := NewReportStore(db)
	adminStore := admins.NewAdminStore(db)
	provider := identity.NewSessionProvider()

	handler := Handler{
		Store: store,
		Cache: NewCache(),
	}

	reportsRouter.Use(middlewares.AdminOnly(provider, adminStore))

	reportsRouter.Get("/", handler.ListReportsHandler)
	reportsRouter.Get("/{respondentID}/{questionnaireID}", handler.GetReportDetailHandler)

	r.Mount("/admin/reports", reportsRouter)
}
