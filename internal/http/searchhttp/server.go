package searchhttp

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapiDoc []byte

// NewRouter собирает роутер поискового API. Поисковые маршруты
// публичные, генерация описаний — только для агентов.
func NewRouter(s *Server, secret string, disableAuth bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)

	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openapiDoc)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/propiedades", s.handleSearch)
		r.Get("/propiedades/clusters", s.handleClusters)
		r.Get("/propiedades/{id}", s.handleGetListing)
		r.Get("/propiedades/{id}/jsonld", s.handleListingJSONLD)
		r.Get("/ciudades", s.handleCities)
		r.Get("/metrics", s.handleMetrics)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(secret, disableAuth, s.log))
			r.Use(RequireRole(RoleAgent))

			r.Post("/propiedades/{id}/descripcion", s.handleGenerateDescription)
		})
	})

	return r
}
