package rates

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	histogramFetchTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finance",
			Subsystem: "rates",
			Name:      "histogram_fetch_time_seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "error"},
	)

	gaugeState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "finance",
			Subsystem: "rates",
			Name:      "state",
			Help:      "0 idle, 1 loading, 2 ready, 3 failed",
		},
	)
)

func observeFetch(provider string, elapsed time.Duration, err error) {
	histogramFetchTime.
		WithLabelValues(provider, strconv.FormatBool(err != nil)).
		Observe(elapsed.Seconds())
}

func observeState(s State) {
	gaugeState.Set(float64(s))
}
