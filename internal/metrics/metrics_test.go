package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveResolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, func() int { return 0 })

	r.ObserveResolve("cache_hit", 0)
	r.ObserveResolve("fetched", 120*time.Millisecond)
	r.ObserveResolve("fetched", 80*time.Millisecond)

	if got := testutil.ToFloat64(r.lookups.WithLabelValues("cache_hit")); got != 1 {
		t.Errorf("cache_hit = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.lookups.WithLabelValues("fetched")); got != 2 {
		t.Errorf("fetched = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	r.ObserveResolve("fetched", time.Second)
}

func TestFavoritesCollector(t *testing.T) {
	n := 3
	c := &FavoritesCollector{count: func() int { return n }}

	want := `
# HELP ghfavorites_favorites Number of stored favorite profiles
# TYPE ghfavorites_favorites gauge
ghfavorites_favorites 3
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want)); err != nil {
		t.Error(err)
	}
}
