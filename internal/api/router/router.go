package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/maisonbelle/storefront/internal/http/handlers"
	httpmiddleware "github.com/maisonbelle/storefront/internal/http/middleware"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	CatalogHandler     *handlers.CatalogHandler
	BookingHandler     *handlers.BookingHandler
	CheckoutHandler    *handlers.CheckoutHandler
	CartHandler        *handlers.CartHandler
	ProfileHandler     *handlers.ProfileHandler
	CurrencyHandler    *handlers.CurrencyHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (no session required)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Storefront API: everything below is scoped to a client session.
	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.Session)

		api.Get("/services", cfg.CatalogHandler.Services)
		api.Get("/beauticians", cfg.CatalogHandler.Beauticians)
		api.Get("/products", cfg.CatalogHandler.Products)

		api.Get("/availability", cfg.BookingHandler.Availability)
		api.Route("/booking/draft", func(draft chi.Router) {
			draft.Get("/", cfg.BookingHandler.GetDraft)
			draft.Delete("/", cfg.BookingHandler.ResetDraft)
			draft.Post("/service", cfg.BookingHandler.SelectService)
			draft.Post("/beautician", cfg.BookingHandler.SelectBeautician)
			draft.Post("/date", cfg.BookingHandler.SelectDate)
			draft.Post("/slot", cfg.BookingHandler.SelectSlot)
			draft.Post("/client", cfg.BookingHandler.SetClient)
		})

		api.Route("/checkout", func(co chi.Router) {
			co.Post("/", cfg.CheckoutHandler.Submit)
			co.Get("/confirmation", cfg.CheckoutHandler.Confirmation)
			co.Post("/cancelled", cfg.CheckoutHandler.PaymentCancelled)
		})

		api.Route("/cart", func(c chi.Router) {
			c.Get("/", cfg.CartHandler.Get)
			c.Post("/", cfg.CartHandler.Add)
			c.Patch("/", cfg.CartHandler.Update)
			c.Delete("/", cfg.CartHandler.Clear)
		})

		api.Route("/wishlist", func(wl chi.Router) {
			wl.Get("/", cfg.ProfileHandler.Wishlist)
			wl.Post("/", cfg.ProfileHandler.AddToWishlist)
			wl.Delete("/", cfg.ProfileHandler.RemoveFromWishlist)
		})

		api.Route("/profile", func(p chi.Router) {
			p.Get("/", cfg.ProfileHandler.Identity)
			p.Get("/appointments", cfg.ProfileHandler.Appointments)
			p.Get("/orders", cfg.ProfileHandler.Orders)
			p.Post("/session", cfg.ProfileHandler.SignIn)
			p.Delete("/session", cfg.ProfileHandler.SignOut)
		})

		api.Get("/currency", cfg.CurrencyHandler.Get)
		api.Put("/currency", cfg.CurrencyHandler.Put)
	})

	return r
}
