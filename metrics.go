package gobsp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sideLabel  = "side"
	queryLabel = "query"
)

var (
	dividesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bsp_divides_total",
		Help: "The number of nodes partitioned by a divider.",
	})

	objectsSplitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bsp_objects_split_total",
		Help: "The number of straddling objects handed to a split.",
	})

	objectsMovedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bsp_objects_moved_total",
		Help: "The number of objects moved into a child node.",
	}, []string{sideLabel})

	queryNodes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bsp_query_nodes",
		Help:    "The number of nodes returned by a visibility query.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{queryLabel})
)
