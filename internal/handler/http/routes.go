package http

import (
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Every route ends with a slash; recipe ids are
// digits only, so any other value is a 404.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.settings.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.settings.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users/create/", h.register)
		r.Post("/users/token/", h.login)
		r.Get("/version/", h.getServerVersion)

		if h.settings.MediaDir != "" {
			media := mediaHandler(h.settings.MediaDir)
			r.Get(mediaPrefix+"*", media.ServeHTTP)
			r.Head(mediaPrefix+"*", media.ServeHTTP)
		}
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users/profile/", h.getProfile)
		r.Patch("/users/profile/", h.updateProfile)

		tags := h.services.TagService
		r.Get("/recipes/tag/", h.listAttributes(tags))
		r.Post("/recipes/tag/", h.createAttribute(tags))

		ingredients := h.services.IngredientService
		r.Get("/recipes/ingredient/", h.listAttributes(ingredients))
		r.Post("/recipes/ingredient/", h.createAttribute(ingredients))

		r.Get("/recipes/", h.listRecipes)
		r.Post("/recipes/", h.createRecipe)
		r.Get("/recipes/{id:[0-9]+}/", h.getRecipe)
		r.Put("/recipes/{id:[0-9]+}/", h.updateRecipe(models.FullUpdate))
		r.Patch("/recipes/{id:[0-9]+}/", h.updateRecipe(models.PartialUpdate))
		r.Delete("/recipes/{id:[0-9]+}/", h.deleteRecipe)
		r.Post("/recipes/{id:[0-9]+}/upload-image/", h.uploadImage)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
