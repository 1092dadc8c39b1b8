package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/cafe-notion-service/internal/delivery/http/handler"
	"github.com/user/cafe-notion-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("POST /extract", h.HandleExtract)
	mux.HandleFunc("POST /notion/save", h.HandleSave)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
