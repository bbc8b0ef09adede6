package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes, middleware, and the metrics endpoint.
func NewRouter(h *Handler, metrics *Metrics, registry *prometheus.Registry) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(metrics.Instrument)

	// Authentication endpoints (public).
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.RegisterUser).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.LoginUser).Methods(http.MethodPost)

	// Catalog endpoints. Listing and detail are public; creation is
	// admin-only.
	apiRouter.HandleFunc("/movies", h.GetMovies).Methods(http.MethodGet)
	apiRouter.Handle("/movies", h.AuthMiddleware(h.RequireAdmin(http.HandlerFunc(h.AddMovie)))).Methods(http.MethodPost)
	apiRouter.HandleFunc("/movies/{id}", h.GetMovieByID).Methods(http.MethodGet)

	// Review lifecycle (bearer-protected).
	apiRouter.Handle("/movies/{id}/reviews", h.AuthMiddleware(http.HandlerFunc(h.CreateReview))).Methods(http.MethodPost)
	apiRouter.Handle("/movies/{id}/reviews/{reviewId}", h.AuthMiddleware(http.HandlerFunc(h.UpdateReview))).Methods(http.MethodPut)
	apiRouter.Handle("/movies/{id}/reviews/{reviewId}", h.AuthMiddleware(http.HandlerFunc(h.DeleteReview))).Methods(http.MethodDelete)

	// Profile and watchlist (bearer-protected, owner-only).
	usersRouter := apiRouter.PathPrefix("/users").Subrouter()
	usersRouter.Use(h.AuthMiddleware)
	usersRouter.HandleFunc("/{id}", h.GetUserProfile).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}", h.UpdateUserProfile).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{id}/watchlist", h.GetWatchlist).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}/watchlist", h.AddToWatchlist).Methods(http.MethodPost)
	usersRouter.HandleFunc("/{id}/watchlist/{movieId}", h.RemoveFromWatchlist).Methods(http.MethodDelete)

	return router
}
