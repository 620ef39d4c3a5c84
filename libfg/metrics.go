package libfg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freegroup_whitehead_moves_total",
		Help: "Whitehead moves applied to presentations",
	})

	shortenSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freegroup_shorten_steps_total",
		Help: "Length reducing moves made while shortening",
	})

	// levelCuts counts level transformations by outcome
	// Labels: "yielded", "trivial"
	levelCuts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freegroup_level_cuts_total",
		Help: "Closed subsets considered as level transformations, by outcome",
	}, []string{"outcome"})

	orbitNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freegroup_orbit_nodes_total",
		Help: "Presentations reported by level orbit searches",
	})

	canonizeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "freegroup_canonize_expanded_nodes",
		Help:    "Search tree nodes expanded per signature",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 1000},
	})
)
