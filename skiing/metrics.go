package skiing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveTotal counts Solve calls by outcome
	solveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skiroute_solve_total",
		Help: "Total solve runs by result",
	}, []string{"result"}) // "ok", "error" or "canceled"

	// solveDuration tracks end-to-end solve latency
	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skiroute_solve_duration_seconds",
		Help:    "Solve duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~33s
	})

	// rootsProcessed counts finished per-root computations
	rootsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skiroute_roots_processed_total",
		Help: "Total roots whose descent graph was solved",
	})

	// dagNodes tracks the size of per-root descent graphs
	dagNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skiroute_dag_nodes",
		Help:    "Number of nodes per root descent graph",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)
