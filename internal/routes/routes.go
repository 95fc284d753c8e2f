package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/handlers"
)

// Setup registers the API surface. Paths mirror the original service so
// existing clients keep working.
func Setup(r chi.Router, tokens *auth.TokenManager, users *handlers.UserHandler, login *handlers.AuthHandler, posts *handlers.PostHandler) {
	protected := auth.Middleware(tokens)

	r.Route("/v1/users", func(r chi.Router) {
		r.Post("/", users.Register)
		r.Get("/{link}", users.GetByLink)
		r.Get("/user/{id}", users.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Put("/", users.Update)
			r.Delete("/", users.Delete)
		})
	})

	r.Post("/v1/auth", login.Login)

	r.Route("/v1/posts", func(r chi.Router) {
		r.Get("/", posts.All)
		r.Get("/{link}", posts.GetByLink)
		r.Get("/user/{link}", posts.ByUserLink)
		r.Get("/userid/{id}", posts.ByUserID)
		r.Get("/category/{category}", posts.ByCategory)
		r.Get("/category/{category}/{page}", posts.ByCategoryPage)
		r.Get("/paginate/{page}", posts.Paginated)
		r.Get("/allposts/latest", posts.TopByRecency)
		r.Get("/allposts/likes", posts.TopByLikes)
		r.Get("/allposts/reads", posts.TopByReads)
		r.Get("/search/{search}", posts.Search)

		r.Group(func(r chi.Router) {
			r.Use(protected)
			r.Post("/", posts.Create)
			r.Put("/{link}", posts.Update)
			r.Delete("/{link}", posts.Delete)
			r.Put("/likes/{link}", posts.Like)
		})
	})
}
