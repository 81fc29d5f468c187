package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/magnetlabs/watchtower/internal/domain"
	apimw "github.com/magnetlabs/watchtower/internal/httpapi/middleware"
	"github.com/magnetlabs/watchtower/internal/runner"
)

type Server struct {
	Logger  *zap.Logger
	Runner  *runner.Runner
	Targets []domain.Target
	APIKeys []string
	RateRPM int
	Burst   int
}

func NewServer(l *zap.Logger, r *runner.Runner, targets []domain.Target) *Server {
	return &Server{Logger: l, Runner: r, Targets: targets}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(g chi.Router) {
		g.Use(apimw.RequireKey(s.APIKeys))
		g.Use(apimw.RateLimit(s.RateRPM, s.Burst))
		g.Get("/api/check", s.handleCheck)
	})

	return r
}

// handleCheck runs one full pass over the configured targets. The
// response is 200 even when targets are down: the run succeeded at
// producing a report, and the report is the payload.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	summary := s.Runner.Run(r.Context(), s.Targets)

	s.Logger.Info("check_served",
		zap.Int("total_checked", summary.TotalChecked),
		zap.Int("failed", summary.Failed),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
