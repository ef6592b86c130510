package http

import (
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.identify)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			// only the active identity mode gets its sign-in endpoints
			switch h.services.AuthService.IdentityMode() {
			case config.IdentityModePassword:
				r.Post("/register", h.register)
				r.Post("/login", h.login)
			case config.IdentityModeExternal:
				r.Post("/external", h.externalSignIn)
			}
			r.Post("/logout", h.logout)
			r.Get("/me", h.me)
		})

		// routes without authorization
		r.Get("/blogs", h.listBlogs)
		r.Get("/blogs/{id}", h.getBlog)
		r.Get("/blogs/{id}/comments", h.listComments)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/blogs", h.createBlog)
			r.Patch("/blogs/{id}", h.updateBlog)
			r.Delete("/blogs/{id}", h.deleteBlog)
			r.Post("/blogs/{id}/comments", h.createComment)
			r.Delete("/comments/{id}", h.deleteComment)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
