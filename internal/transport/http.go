package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/handler"
)

// RouterConfig carries the transport-level settings.
type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter wires the ML API routes.
func NewRouter(cfg RouterConfig, rec *handler.RecommendationHandler, rep *handler.ReportHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"E-commerce ML API","version":"1.0.0"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","service":"ml-service"}`))
	})

	r.Route("/ml", func(r chi.Router) {
		r.Get("/recommendations", rec.GetRecommendations)
		r.Get("/reports/sales", rep.GetSalesReport)
		r.Get("/reports/download/{filename}", rep.DownloadReport)
	})

	return r
}
