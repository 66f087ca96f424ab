package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"isp-admin/internal/config"
	"isp-admin/internal/database"
	"isp-admin/internal/handler"
	"isp-admin/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Packages *handler.PackageHandler
	Vouchers *handler.VoucherHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, db *database.DB) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/packages", func(pkg chi.Router) {
			pkg.Get("/active", h.Packages.GetActive)

			pkg.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)
				protected.Get("/", h.Packages.GetAll)
				protected.Post("/", h.Packages.Create)
				protected.Get("/{id}", h.Packages.GetByID)
				protected.Put("/{id}", h.Packages.Update)
				protected.Delete("/{id}", h.Packages.Delete)
			})
		})

		api.Route("/vouchers", func(vch chi.Router) {
			vch.Get("/active", h.Vouchers.GetActive)

			vch.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)
				protected.Get("/", h.Vouchers.GetAll)
				protected.Post("/", h.Vouchers.Create)
				protected.Get("/{id}", h.Vouchers.GetByID)
				protected.Put("/{id}", h.Vouchers.Update)
				protected.Delete("/{id}", h.Vouchers.Delete)
			})
		})
	})

	return r
}
