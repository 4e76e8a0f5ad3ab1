package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gamecatalog/pkg/app"
	"github.com/ghuser/gamecatalog/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// GameRoutes registers catalog endpoints on the provided chi router.
func GameRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Post("/", handlers.NewPostGameHandler(svcs).Execute)
			r.Get("/", handlers.NewListGamesHandler(svcs).Execute)
			r.Get("/top-sellers", handlers.NewTopSellersHandler(svcs).Execute)
			r.Get("/search", handlers.NewSearchGamesHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetGameHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutGameHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteGameHandler(svcs).Execute)
		})
	})
}
