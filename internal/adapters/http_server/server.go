package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

// New builds the router. upstream is the per-attempt API timeout; the request
// budget covers a GET plus its one retry.
func New(upstream time.Duration) *Server {
	m := chi.NewRouter()

	// all middlewares go here, before any routes are added
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Trace)
	m.Use(Observe(log.Logger))
	m.Use(Timeout(RequestBudget(upstream)))

	return &Server{mux: m}
}

// RequestBudget is two upstream attempts plus room for backoff and rate limiting.
func RequestBudget(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		upstream = 30 * time.Second
	}
	return 2*upstream + 5*time.Second
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
