package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"AerialView/internal/metrics"
)

// NewRouter wires the API routes, health probe and metrics endpoint.
func NewRouter(h *AnalysisHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(),
		LoggingMiddleware(),
		CORSMiddleware(),
	)))

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/symbols/{symbol}/report", h.GetReport).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/symbols/{symbol}/indicators", h.GetIndicators).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/compare", h.Compare).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler())

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})
	return router
}
