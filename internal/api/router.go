package api

import (
	"github.com/NoraMoser/exploring/internal/service"
	"github.com/NoraMoser/exploring/internal/stats"
	"github.com/NoraMoser/exploring/internal/web"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DefaultSessionCookie names the cookie that carries the favorites session id
const DefaultSessionCookie = "exploring_session"

// Options configures the router
type Options struct {
	SessionCookie string
	Logger        *zap.Logger
}

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, renderer *web.Renderer, statsCollector *stats.Collector, opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cookie := opts.SessionCookie
	if cookie == "" {
		cookie = DefaultSessionCookie
	}

	handler := NewHandler(service, logger)
	pages := NewPageHandler(service, renderer, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(
		recoverMiddleware(logger),
		loggingMiddleware(logger),
		gzipMiddleware,
		sessionMiddleware(cookie),
	)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Pages
	router.HandleFunc("/", pages.Home).Methods("GET")
	router.HandleFunc("/country/{code}", pages.Country).Methods("GET")
	router.HandleFunc("/favorites", pages.Favorites).Methods("GET")
	router.HandleFunc("/favorites", pages.AddFavorite).Methods("POST")
	router.HandleFunc("/favorites/{code}/delete", pages.RemoveFavorite).Methods("POST")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/countries", handler.ListCountries).Methods("GET")
	v1.HandleFunc("/countries/{code}", handler.GetCountry).Methods("GET")
	v1.HandleFunc("/favorites", handler.ListFavorites).Methods("GET")
	v1.HandleFunc("/favorites", handler.AddFavorite).Methods("POST")
	v1.HandleFunc("/favorites/{code}", handler.RemoveFavorite).Methods("DELETE")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
