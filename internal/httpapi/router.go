package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/shophub/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger       *slog.Logger
	RequireLogin bool
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.CORS)

	r.Get("/health", h.Health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)
		r.Get("/products", h.Products)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireSession(h.shop.Session, opts.RequireLogin))

			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/checkout", h.Checkout)
			r.Post("/items", h.AddItem)
			r.Route("/items/{productId}", func(r chi.Router) {
				r.Put("/", h.UpdateItem)
				r.Delete("/", h.RemoveItem)
				r.Get("/quantity", h.ItemQuantity)
				r.Post("/increment", h.IncrementItem)
				r.Post("/decrement", h.DecrementItem)
			})
		})
	})

	return r
}
