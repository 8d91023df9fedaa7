package categories

import (
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/admins"
	"github.com/matheusot/enquete/api/identity"
	"github.com/matheusot/enquete/api/middlewares"
)

func SetupRoutes(r *chi.Mux, db *pgxpool.Pool) {

	categoriesRouter := chi.NewRouter()

	store := NewCategoryStore(db)
	adminStore := admins.NewAdminStore(db)
	provider := identity.NewSessionProvider()

	handler := Handler{
		Store: store,
	}

	categoriesRouter.Use(middlewares.AdminOnly(provider, adminStore))

	categoriesRouter.Get("/", handler.ListCategoriesHandler)
	categoriesRouter.Post("/", handler.CreateCategoryHandler)
	categoriesRouter.Get("/{categoryID}", handler.GetCategoryHandler)
	categoriesRouter.Patch("/{categoryID}", handler.UpdateCategoryHandler)
	categoriesRouter.Delete("/{categoryID}", handler.DeleteCategoryHandler)

	r.Mount("/admin/categories", categoriesRouter)
}
