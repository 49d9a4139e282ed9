package node

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the launcher's collectors. A nil *Metrics records nothing.
type Metrics struct {
	chunksRelayed prometheus.Counter
	bytesRelayed  prometheus.Counter
	spawnFailures prometheus.Counter
	exits         *prometheus.CounterVec
}

// NewMetrics registers the collectors. If registry is nil,
// prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		chunksRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "devnet_stdout_chunks_total",
			Help: "Chunks read from the node's stdout and relayed",
		}),
		bytesRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "devnet_stdout_bytes_total",
			Help: "Bytes read from the node's stdout and relayed",
		}),
		spawnFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "devnet_spawn_failures_total",
			Help: "Times the node process could not be started",
		}),
		exits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "devnet_node_exits_total",
			Help: "Node process exits by exit code",
		}, []string{"code"}),
	}
}

func (m *Metrics) RecordChunk(n int) {
	if m == nil {
		return
	}
	m.chunksRelayed.Inc()
	m.bytesRelayed.Add(float64(n))
}

func (m *Metrics) RecordSpawnFailure() {
	if m == nil {
		return
	}
	m.spawnFailures.Inc()
}

func (m *Metrics) RecordExit(code int) {
	if m == nil {
		return
	}
	m.exits.WithLabelValues(strconv.Itoa(code)).Inc()
}
