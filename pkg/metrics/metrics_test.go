package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAccumulates(t *testing.T) {
	m := New()
	m.Observe(Rental{Weather: "sunny", Price: 15, Rented: 10, Broken: 1, Revenue: 150})
	m.Observe(Rental{Weather: "sunny", Price: 20, Rented: 4, Broken: 0, Revenue: 80})
	m.Observe(Rental{Weather: "rainy", Price: 15, Rented: 2, Broken: 1, Revenue: 30})

	assert.Equal(t, 14.0, testutil.ToFloat64(m.ScootersRented.WithLabelValues("sunny")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScootersRented.WithLabelValues("rainy")))
	assert.Equal(t, 260.0, testutil.ToFloat64(m.Revenue))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScootersBroken))
}

func TestSetFleetAndDays(t *testing.T) {
	m := New()
	m.SetFleet(Fleet{Cash: 250, Working: 9, Broken: 1})
	m.DayAdvanced()
	m.DayAdvanced()

	assert.Equal(t, 250.0, testutil.ToFloat64(m.Cash))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.WorkingScooters))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BrokenScooters))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DaysPlayed))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SetFleet(Fleet{Cash: 100, Working: 10})
	m.Observe(Rental{Weather: "cloudy", Price: 15, Rented: 3, Revenue: 45})

	path := filepath.Join(t.TempDir(), "scooters.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "scooter_rentals_cash 100")
	assert.Contains(t, out, `scooter_rentals_scooters_rented_total{weather="cloudy"} 3`)
	assert.Contains(t, out, "scooter_rentals_revenue_total 45")
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}

func TestRegistryIsIsolated(t *testing.T) {
	a, b := New(), New()
	a.DayAdvanced()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DaysPlayed))

	// The rented vector has no series until a weather label is used.
	count, err := testutil.GatherAndCount(a.Registry())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
