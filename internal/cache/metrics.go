package cache

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics считает hit/miss/error по bucket'ам на собственном registry,
// чтобы несколько экземпляров движка в одном процессе не конфликтовали
type metrics struct {
	registry  *prometheus.Registry
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	netErrors *prometheus.CounterVec
	evictions *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offsync",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits per bucket.",
		}, []string{"bucket"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offsync",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses per bucket.",
		}, []string{"bucket"}),
		netErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offsync",
			Subsystem: "cache",
			Name:      "network_errors_total",
			Help:      "Network fetch failures per bucket.",
		}, []string{"bucket"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offsync",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries evicted to enforce bucket limits.",
		}, []string{"bucket"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offsync",
			Subsystem: "cache",
			Name:      "offline_fallbacks_total",
			Help:      "Requests answered with the offline fallback.",
		}, []string{"bucket"}),
	}

	m.registry.MustRegister(m.hits, m.misses, m.netErrors, m.evictions, m.fallbacks)
	return m
}

// Registry отдает registry для экспорта наружу (например, promhttp)
func (m *metrics) Registry() *prometheus.Registry {
	return m.registry
}

// snapshot собирает текущие значения счетчиков в плоскую map
// "<metric>{bucket}" -> value для управляющего канала GET_METRICS
func (m *metrics) snapshot() map[string]int64 {
	out := make(map[string]int64)

	families, err := m.registry.Gather()
	if err != nil {
		return out
	}

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			bucketName := ""
			for _, label := range metric.GetLabel() {
				if label.GetName() == "bucket" {
					bucketName = label.GetValue()
				}
			}
			key := fmt.Sprintf("%s{%s}", mf.GetName(), bucketName)
			out[key] = int64(metric.GetCounter().GetValue())
		}
	}

	return out
}
