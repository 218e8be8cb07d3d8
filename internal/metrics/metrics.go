package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "booking_operations_total",
			Help:      "Booking ledger operations by type and result.",
		},
		[]string{"operation", "result"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"},
	)

	exports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "exports_total",
			Help:      "Completed XLSX exports.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingOps, logins, exports)
	})
}

// IncBookingOp increments the ledger operation counter.
func IncBookingOp(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	bookingOps.WithLabelValues(operation, result).Inc()
}

// IncLogin increments the login counter for a result label.
func IncLogin(result string) {
	logins.WithLabelValues(result).Inc()
}

// IncExport increments the export counter.
func IncExport() {
	exports.Inc()
}
