// Package metrics tracks business figures in a Prometheus registry and
// exports them as a textfile for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scooter_rentals"

// Metrics holds the Prometheus counters, histograms, and gauges for a game.
type Metrics struct {
	registry *prometheus.Registry

	ScootersRented  *prometheus.CounterVec // labels: weather
	Revenue         prometheus.Counter
	ScootersBroken  prometheus.Counter
	DaysPlayed      prometheus.Counter
	RentalPrice     prometheus.Histogram
	Cash            prometheus.Gauge
	WorkingScooters prometheus.Gauge
	BrokenScooters  prometheus.Gauge
}

// Rental is what one settled day adds to the metrics.
type Rental struct {
	Weather string
	Price   float64
	Rented  int
	Broken  int
	Revenue float64
}

// Fleet is the business position after a change.
type Fleet struct {
	Cash    float64
	Working int
	Broken  int
}

// New creates all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ScootersRented: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scooters_rented_total",
			Help:      "Scooters rented out, by the day's weather.",
		}, []string{"weather"}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Rental income.",
		}),
		ScootersBroken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scooters_broken_total",
			Help:      "Scooters that came back broken.",
		}),
		DaysPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_played_total",
			Help:      "Days advanced.",
		}),
		RentalPrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rental_price",
			Help:      "Rental price set each day.",
			Buckets:   []float64{5, 10, 12.5, 15, 17.5, 20, 30, 50},
		}),
		Cash: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cash",
			Help:      "Cash on hand.",
		}),
		WorkingScooters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scooters_working",
			Help:      "Scooters ready to rent.",
		}),
		BrokenScooters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scooters_broken",
			Help:      "Scooters waiting for repair.",
		}),
	}

	m.registry.MustRegister(
		m.ScootersRented,
		m.Revenue,
		m.ScootersBroken,
		m.DaysPlayed,
		m.RentalPrice,
		m.Cash,
		m.WorkingScooters,
		m.BrokenScooters,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a settled rental day.
func (m *Metrics) Observe(r Rental) {
	m.ScootersRented.WithLabelValues(r.Weather).Add(float64(r.Rented))
	m.ScootersBroken.Add(float64(r.Broken))
	if r.Revenue > 0 {
		m.Revenue.Add(r.Revenue)
	}
	m.RentalPrice.Observe(r.Price)
}

func (m *Metrics) SetFleet(f Fleet) {
	m.Cash.Set(f.Cash)
	m.WorkingScooters.Set(float64(f.Working))
	m.BrokenScooters.Set(float64(f.Broken))
}

func (m *Metrics) DayAdvanced() {
	m.DaysPlayed.Inc()
}

// WriteTextfile writes the registry in the text exposition format. An
// empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
