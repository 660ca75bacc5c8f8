package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var favoritesDesc = prometheus.NewDesc(
	"ghfavorites_favorites",
	"Number of stored favorite profiles",
	nil,
	nil,
)

// FavoritesCollector is a custom Prometheus collector that reads the favorites
// count on each scrape.
type FavoritesCollector struct {
	count func() int
}

// Describe sends the metric descriptor to the channel.
func (c *FavoritesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- favoritesDesc
}

// Collect emits the current favorites count as a gauge.
func (c *FavoritesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(favoritesDesc, prometheus.GaugeValue, float64(c.count()))
}

// Recorder records lookup outcomes. It satisfies favorites.Observer.
type Recorder struct {
	lookups  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New registers the lookup metrics and the favorites collector with reg.
// count must be safe to call from the scrape goroutine.
func New(reg prometheus.Registerer, count func() int) *Recorder {
	r := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ghfavorites_lookups_total",
			Help: "Total resolve calls by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ghfavorites_lookup_duration_seconds",
			Help:    "Duration of upstream profile lookups",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.lookups, r.duration, &FavoritesCollector{count: count})
	return r
}

// ObserveResolve counts a resolve outcome. elapsed is zero for cache hits,
// which are not added to the upstream duration histogram.
func (r *Recorder) ObserveResolve(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		r.duration.Observe(elapsed.Seconds())
	}
	slog.Debug("resolve observed", "outcome", outcome, "elapsed", elapsed)
}
