// Package monitor exposes a running optimization over HTTP: a JSON
// status endpoint carrying the latest orchestrator.Progress snapshot,
// a result endpoint carrying the final summary once the run completes,
// and a Prometheus /metrics endpoint.
package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sarchlab/dcsmapper/internal/metrics"
	"github.com/sarchlab/dcsmapper/orchestrator"
)

// Server serves live status for one optimization run. Zero value is
// not usable; construct with New.
type Server struct {
	metrics *metrics.Registry
	router  *mux.Router

	mu       sync.RWMutex
	status   statusView
	finished bool
	result   resultView
}

type statusView struct {
	RunID         uuid.UUID `json:"run_id"`
	Evaluations   int       `json:"evaluations"`
	ObjectiveBest float64   `json:"objective_best"`
	Temperature   float64   `json:"temperature"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type resultView struct {
	RunID            uuid.UUID `json:"run_id"`
	InitialObjective float64   `json:"initial_objective"`
	BestObjective    float64   `json:"best_objective"`
	Evaluations      int       `json:"evaluations"`
	OptimumIteration int       `json:"optimum_iteration"`
}

// New builds a Server with its routes registered.
func New() *Server {
	s := &Server{metrics: metrics.New()}

	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/result", s.handleResult).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the server's http.Handler, for use with an
// http.Server or httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Watch consumes Progress snapshots from ch until it is closed,
// updating the status view and the Prometheus registry as they
// arrive. Intended to run in its own goroutine alongside the
// optimization that publishes to ch.
func (s *Server) Watch(ch <-chan orchestrator.Progress) {
	for p := range ch {
		s.metrics.Observe(p.Evals, p.BestObjective, p.Temperature)

		s.mu.Lock()
		s.status = statusView{
			RunID:         p.RunID,
			Evaluations:   p.Evals,
			ObjectiveBest: p.BestObjective,
			Temperature:   p.Temperature,
			UpdatedAt:     time.Now(),
		}
		s.mu.Unlock()
	}
}

// Finish records the final result once the optimization returns,
// switching /result from "still running" to the completed summary.
func (s *Server) Finish(runID uuid.UUID, initialObjective, bestObjective float64, evals, optimumIteration int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	s.result = resultView{
		RunID:            runID,
		InitialObjective: initialObjective,
		BestObjective:    bestObjective,
		Evaluations:      evals,
		OptimumIteration: optimumIteration,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	view := s.status
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (s *Server) handleResult(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	finished := s.finished
	view := s.result
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !finished {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
		return
	}
	json.NewEncoder(w).Encode(view)
}
