package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ApplyVoucherDuration 核销请求耗时
	ApplyVoucherDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voucher_apply_duration_seconds",
			Help:    "Duration of voucher apply requests in seconds",
			Buckets: defaultBuckets,
		},
		[]string{"status"},
	)
	// ValidateVoucherDuration 校验请求耗时
	ValidateVoucherDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voucher_validate_duration_seconds",
			Help:    "Duration of voucher validate requests in seconds",
			Buckets: defaultBuckets,
		},
		[]string{"status"},
	)
)

var defaultBuckets = []float64{
	0.001, // 1ms
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
	10.0,  // 10s
}

func RecordApplyVoucherDuration(status string, duration float64) {
	ApplyVoucherDuration.WithLabelValues(status).Observe(duration)
}

func RecordValidateVoucherDuration(status string, duration float64) {
	ValidateVoucherDuration.WithLabelValues(status).Observe(duration)
}
