package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the benefit module.
type Metrics struct {
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	PeriodsCalculated   prometheus.Counter
}

// New creates a new Metrics instance with all benefit module metrics registered.
func New() *Metrics {
	return &Metrics{
		CalculationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orlof_benefit_calculations_total",
			Help: "Benefit calculations by working type and outcome",
		}, []string{"working_type", "outcome"}),
		CalculationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orlof_benefit_calculation_duration_seconds",
			Help:    "Duration of benefit calculations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		PeriodsCalculated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orlof_benefit_periods_calculated_total",
			Help: "Total leave periods calculated",
		}),
	}
}

// ObserveCalculation records one calculation attempt.
func (m *Metrics) ObserveCalculation(workingType, outcome string, periods int, start time.Time) {
	m.CalculationsTotal.WithLabelValues(workingType, outcome).Inc()
	if outcome == "ok" {
		m.PeriodsCalculated.Add(float64(periods))
		m.CalculationDuration.Observe(time.Since(start).Seconds())
	}
}
