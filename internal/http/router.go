package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/colegioelo/estoque/internal/http/audit"
	"github.com/colegioelo/estoque/internal/http/export"
	"github.com/colegioelo/estoque/internal/http/feed"
	"github.com/colegioelo/estoque/internal/http/ledger"
	"github.com/colegioelo/estoque/internal/http/report"
)

func New(
	origins []string,
	feedV1 *feed.Handler,
	reportV1 *report.Handler,
	ledgerV1 *ledger.Handler,
	exportV1 *export.Handler,
	auditV1 *audit.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Accept", "Content-Type"},
		ExposedHeaders:     []string{"Content-Disposition"},
		MaxAge:             300,
		OptionsPassthrough: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/feed", feedV1.Routes)

		r.Route("/report", reportV1.Routes)

		r.Route("/ledger", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ledgerV1.Routes(r)
		})

		r.Route("/export", exportV1.Routes)

		r.Route("/audit", auditV1.Routes)
	})

	return router
}
