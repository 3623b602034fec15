package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(s uint64) *uint64 { return &s }

func baseScenario() Scenario {
	return Scenario{
		Name:       "atm-call",
		Method:     MethodAnalytic,
		Spot:       100,
		Strike:     100,
		Expiry:     1.0,
		Type:       "call",
		Volatility: 0.20,
		Rate:       0.05,
	}
}

func TestRunAnalyticScenario(t *testing.T) {
	res, err := baseScenario().Run()
	require.NoError(t, err)
	assert.Equal(t, MethodAnalytic, res.Method)
	assert.InDelta(t, 10.450584, res.Price, 1e-4)
	assert.Zero(t, res.StdError)
}

func TestRunLatticeScenarioDefaultsSteps(t *testing.T) {
	s := baseScenario()
	s.Method = MethodLattice
	s.Exercise = "american"
	s.Type = "put"

	res, err := s.Run()
	require.NoError(t, err)
	assert.Greater(t, res.Price, 5.5735)
}

func TestRunBermudanScenarioFromCSVSchedule(t *testing.T) {
	s := baseScenario()
	s.Method = MethodLattice
	s.Exercise = "bermudan"
	s.Type = "put"
	s.Steps = 200
	s.ScheduleCSV = "0.25; 0.5; 1.0"

	res, err := s.Run()
	require.NoError(t, err)
	assert.Greater(t, res.Price, 5.5735)
}

func TestRunMonteCarloScenarioReproducible(t *testing.T) {
	s := baseScenario()
	s.Method = MethodMonteCarlo
	s.Simulations = 5000
	s.MCSteps = 10
	s.Antithetic = true
	s.Seed = seedPtr(42)

	res1, err := s.Run()
	require.NoError(t, err)
	res2, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, res1.Price, res2.Price)
	assert.Equal(t, res1.StdError, res2.StdError)
	assert.Greater(t, res1.StdError, 0.0)
}

func TestRunRejectsUnknownMethod(t *testing.T) {
	s := baseScenario()
	s.Method = "magic"
	_, err := s.Run()
	require.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte(`name: yaml-put
method: lattice
exercise: bermudan
spot: 100
strike: 100
expiry: 1.0
type: put
volatility: 0.2
rate: 0.05
steps: 200
exercise_schedule: [0.5, 1.0]
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-put", s.Name)
	assert.Equal(t, []float64{0.5, 1.0}, s.Schedule)

	res, err := s.Run()
	require.NoError(t, err)
	assert.Greater(t, res.Price, 5.5735)
}

func TestLoadBatchCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	data := []byte("name,method,spot,strike,expiry,type,volatility,rate,steps,exercise,schedule\n" +
		"euro-call,analytic,100,100,1.0,call,0.2,0.05,0,,\n" +
		"amer-put,lattice,100,100,1.0,put,0.2,0.05,500,american,\n" +
		"berm-put,lattice,100,100,1.0,put,0.2,0.05,200,bermudan,0.5;1.0\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	scenarios, err := LoadBatchCSV(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "berm-put", scenarios[2].Name)
	assert.Equal(t, "0.5;1.0", scenarios[2].ScheduleCSV)
}

func TestRunAllKeepsOrderAndRecordsFailures(t *testing.T) {
	good := baseScenario()
	bad := baseScenario()
	bad.Name = "broken"
	bad.Volatility = -1 // fails contract validation

	results := RunAll([]Scenario{good, bad, good}, 2)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Err)
	assert.InDelta(t, 10.450584, results[0].Price, 1e-4)

	assert.Equal(t, "broken", results[1].Name)
	assert.NotEmpty(t, results[1].Err)
	assert.Zero(t, results[1].Price)

	assert.Empty(t, results[2].Err)
}
