package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Auth("login", "ok")
	m.Auth("login", "invalid_password")
	m.Auth("login", "ok")
	if got := testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", "ok")); got != 2 {
		t.Errorf("login ok = %v, want 2", got)
	}

	m.CartChanged("add", 3, 50)
	if got := testutil.ToFloat64(m.CartItems); got != 3 {
		t.Errorf("cart items = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.CartValue); got != 50 {
		t.Errorf("cart value = %v, want 50", got)
	}

	m.CatalogFetched(false)
	if got := testutil.ToFloat64(m.CatalogFetches.WithLabelValues("error")); got != 1 {
		t.Errorf("catalog errors = %v, want 1", got)
	}

	m.Corrupt("shopHubCart")
	if got := testutil.ToFloat64(m.CorruptValues.WithLabelValues("shopHubCart")); got != 1 {
		t.Errorf("corrupt = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Auth("signup", "ok")
	m.CartChanged("clear", 0, 0)
	m.CatalogFetched(true)
	m.Corrupt("currentUser")
}
