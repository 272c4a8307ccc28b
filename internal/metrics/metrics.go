// Package metrics holds the Prometheus collectors for the search agent.
// A nil *Agent is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rfpagent"

type Agent struct {
	registry      *prometheus.Registry
	modelRequests *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	indexQueries  *prometheus.HistogramVec
	sessions      prometheus.Gauge
}

func New(reg *prometheus.Registry) *Agent {
	a := &Agent{
		registry: reg,
		modelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "Model round-trips by round and outcome.",
		}, []string{"round", "outcome"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations requested by the model, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		indexQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_query_seconds",
			Help:      "Latency of search index queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Conversation sessions currently cached.",
		}),
	}
	reg.MustRegister(a.modelRequests, a.toolCalls, a.indexQueries, a.sessions)
	return a
}

func (a *Agent) ModelRequest(round, outcome string) {
	if a == nil {
		return
	}
	a.modelRequests.WithLabelValues(round, outcome).Inc()
}

func (a *Agent) ToolCall(tool, outcome string) {
	if a == nil {
		return
	}
	a.toolCalls.WithLabelValues(tool, outcome).Inc()
}

func (a *Agent) ObserveIndexQuery(operation string, started time.Time) {
	if a == nil {
		return
	}
	a.indexQueries.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (a *Agent) SetSessions(n int) {
	if a == nil {
		return
	}
	a.sessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (a *Agent) Handler() http.Handler {
	if a == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry})
}
