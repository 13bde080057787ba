// Package metrics exposes Prometheus counters for solver search progress
// and an optional HTTP endpoint to serve them.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Decisions counts every variable decision made across all Solve calls
	// in the process.
	Decisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cdclsat_decisions_total",
			Help: "Total number of decision-level openings made by the solver",
		},
	)

	// Propagations counts every forced assignment made by clause
	// propagation.
	Propagations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cdclsat_propagations_total",
			Help: "Total number of forced assignments made by propagation",
		},
	)

	// Conflicts counts every conflict reached during search.
	Conflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cdclsat_conflicts_total",
			Help: "Total number of conflicts encountered during search",
		},
	)

	// LearnedClauses counts every clause appended to the store by conflict
	// analysis.
	LearnedClauses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cdclsat_learned_clauses_total",
			Help: "Total number of clauses learned from conflict analysis",
		},
	)
)

func init() {
	prometheus.MustRegister(Decisions)
	prometheus.MustRegister(Propagations)
	prometheus.MustRegister(Conflicts)
	prometheus.MustRegister(LearnedClauses)
}

// Serve starts an HTTP server exposing /metrics on addr and blocks until
// ctx is cancelled or the server fails to start.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
