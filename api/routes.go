package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public health check and the authenticated /admin
// routes. Static segments win over {kind}, so lookups and sync-runs never
// reach the collection handlers.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		// Lookups
		r.Get("/lookups/countries", handlers.listHandler.getCountries())
		r.Get("/lookups/{kind}", handlers.listHandler.getLookup())

		// Sync journal
		r.Get("/sync-runs", handlers.syncHandler.getSyncRuns())
		r.Get("/sync-runs/{runID}", handlers.syncHandler.getSyncRun())

		// Collections
		r.Get("/{kind}", handlers.listHandler.getPage())
		r.Post("/{kind}", handlers.formHandler.create())
		r.Post("/{kind}/sync", handlers.syncHandler.postSync())
		r.Put("/{kind}/{id}", handlers.formHandler.update())
		r.Delete("/{kind}/{id}", handlers.formHandler.delete())

		// Mappings
		r.Get("/{kind}/{id}/tags", handlers.mappingHandler.listTags())
		r.Post("/{kind}/{id}/tags", handlers.mappingHandler.addTag())
		r.Put("/{kind}/{id}/tags/{tagID}", handlers.mappingHandler.updateTag())
		r.Delete("/{kind}/{id}/tags/{tagID}", handlers.mappingHandler.deleteTag())
		r.Put("/{kind}/{id}/technologies", handlers.mappingHandler.replaceTechnologies())
	})
}
