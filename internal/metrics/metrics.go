// Package metrics exposes Prometheus collectors for auth, cart and catalog activity.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors registered for one process.
type Metrics struct {
	AuthAttempts   *prometheus.CounterVec
	CartMutations  *prometheus.CounterVec
	CartItems      prometheus.Gauge
	CartValue      prometheus.Gauge
	CatalogFetches *prometheus.CounterVec
	CorruptValues  *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shophub",
			Name:      "auth_attempts_total",
			Help:      "Login and signup attempts by outcome.",
		}, []string{"op", "result"}),
		CartMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shophub",
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		CartItems: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "shophub",
			Name:      "cart_items",
			Help:      "Current sum of quantities in the cart.",
		}),
		CartValue: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "shophub",
			Name:      "cart_total_price",
			Help:      "Current cart total price.",
		}),
		CatalogFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shophub",
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by result.",
		}, []string{"result"}),
		CorruptValues: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shophub",
			Name:      "corrupt_values_total",
			Help:      "Persisted values discarded as corrupt, by key.",
		}, []string{"key"}),
	}
}

// Auth records one login or signup attempt.
func (m *Metrics) Auth(op, result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(op, result).Inc()
}

// CartChanged records a mutation and the resulting derived cart fields.
func (m *Metrics) CartChanged(op string, count int, total float64) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
	m.CartItems.Set(float64(count))
	m.CartValue.Set(total)
}

// CatalogFetched records the result of one catalog fetch.
func (m *Metrics) CatalogFetched(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.CatalogFetches.WithLabelValues(result).Inc()
}

// Corrupt records a discarded persisted value.
func (m *Metrics) Corrupt(key string) {
	if m == nil {
		return
	}
	m.CorruptValues.WithLabelValues(key).Inc()
}
