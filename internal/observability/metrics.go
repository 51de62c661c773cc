package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WebSocketBackpressureDrops counts messages dropped because a client's send
// buffer was full or closed.
var WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chirp_websocket_backpressure_drops_total",
	Help: "Total number of websocket messages dropped due to backpressure",
}, []string{"hub", "reason"})

// WebSocketConnections tracks currently open websocket connections per hub.
var WebSocketConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "chirp_websocket_connections",
	Help: "Number of currently open websocket connections",
}, []string{"hub"})
