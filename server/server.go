package server

import (
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/stepboard/models"
)

// Server exposes the view model as a local web dashboard.
type Server struct {
	// mu serializes commands so the view model sees one at a time
	mu       sync.Mutex
	vm       *models.ViewModel
	metrics  *Metrics
	registry *prometheus.Registry
}

func New(vm *models.ViewModel, metrics *Metrics, registry *prometheus.Registry) *Server {
	return &Server{
		vm:       vm,
		metrics:  metrics,
		registry: registry,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)

	r.Get("/", s.indexHandler)
	r.Post("/sort/{field}", s.sortHandler)
	r.Post("/save", s.saveHandler)
	r.Post("/draw", s.drawHandler)
	r.Get("/api/entries", s.entriesHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Serve blocks until the http server stops.
func (s *Server) Serve(l net.Listener) error {
	logrus.Infof("Server starting on http://%s", l.Addr())
	return http.Serve(l, s.Router())
}
