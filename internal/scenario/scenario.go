// Package scenario defines the pricing-scenario model consumed by the CLI:
// one scenario pairs contract terms with a pricing method and its
// configuration. Scenarios load from a YAML file (single run) or a CSV
// batch, and Run dispatches to the right pricer.
package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/contactkeval/option-pricing/internal/logger"
	"github.com/contactkeval/option-pricing/internal/option"
	"github.com/contactkeval/option-pricing/internal/pricing"
)

// Supported pricing methods.
const (
	MethodAnalytic   = "analytic"
	MethodLattice    = "lattice"
	MethodMonteCarlo = "montecarlo"
)

// Scenario is one pricing request: contract terms plus evaluator choice
// and evaluator-specific configuration.
type Scenario struct {
	Name   string `yaml:"name" csv:"name"`
	Method string `yaml:"method" csv:"method"` // analytic | lattice | montecarlo

	Spot          float64 `yaml:"spot" csv:"spot"`
	Strike        float64 `yaml:"strike" csv:"strike"`
	Expiry        float64 `yaml:"expiry" csv:"expiry"` // years
	Type          string  `yaml:"type" csv:"type"`     // call | put
	Volatility    float64 `yaml:"volatility" csv:"volatility"`
	Rate          float64 `yaml:"rate" csv:"rate"`
	DividendYield float64 `yaml:"dividend_yield" csv:"dividend_yield"`

	// Lattice configuration. Exercise is european (default), american, or
	// bermudan; a bermudan scenario lists its exercise times in Schedule
	// (YAML) or semicolon-separated in ScheduleCSV (CSV batches).
	Steps       int       `yaml:"steps,omitempty" csv:"steps"`
	Exercise    string    `yaml:"exercise,omitempty" csv:"exercise"`
	Schedule    []float64 `yaml:"exercise_schedule,omitempty" csv:"-"`
	ScheduleCSV string    `yaml:"-" csv:"schedule"`

	// Monte Carlo configuration. MCSteps is the number of monitoring dates.
	Simulations int     `yaml:"simulations,omitempty" csv:"simulations"`
	MCSteps     int     `yaml:"monitoring_steps,omitempty" csv:"monitoring_steps"`
	Antithetic  bool    `yaml:"antithetic,omitempty" csv:"antithetic"`
	IncludeSpot bool    `yaml:"include_spot,omitempty" csv:"include_spot"`
	Seed        *uint64 `yaml:"seed,omitempty" csv:"seed"`
}

// Result is the outcome of pricing one scenario.
type Result struct {
	Name     string        `json:"name" csv:"name"`
	Method   string        `json:"method" csv:"method"`
	Price    float64       `json:"price" csv:"price"`
	StdError float64       `json:"std_error,omitempty" csv:"std_error"`
	Elapsed  time.Duration `json:"elapsed_ns" csv:"-"`
	Err      string        `json:"error,omitempty" csv:"error"`
}

// Defaults mirror the evaluator defaults of the original tool.
const (
	defaultSteps       = 200
	defaultSimulations = 10000
	defaultMCSteps     = 100
)

// LoadYAML reads a single scenario from a YAML file.
func LoadYAML(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}
	return s, nil
}

// LoadBatchCSV reads a batch of scenarios from a CSV file with a header
// row matching the csv tags on Scenario.
func LoadBatchCSV(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch: %w", err)
	}
	defer f.Close()
	var out []Scenario
	if err := gocsv.UnmarshalFile(f, &out); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	return out, nil
}

// contract builds the validated option contract for the scenario.
func (s Scenario) contract() (option.Contract, error) {
	return option.New(s.Expiry, s.Strike, option.Type(s.Type), s.Volatility, s.Rate, s.DividendYield)
}

// schedule returns the bermudan exercise times, preferring the structured
// YAML field and falling back to the semicolon-separated CSV form.
func (s Scenario) schedule() ([]float64, error) {
	if len(s.Schedule) > 0 {
		return s.Schedule, nil
	}
	if s.ScheduleCSV == "" {
		return nil, nil
	}
	parts := strings.Split(s.ScheduleCSV, ";")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		t, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad schedule entry %q", option.ErrInvalidParameter, p)
		}
		out = append(out, t)
	}
	return out, nil
}

// Run prices the scenario and returns its result. Pricing errors are
// returned, not embedded; RunAll embeds them for batch reporting.
func (s Scenario) Run() (Result, error) {
	c, err := s.contract()
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Result{Name: s.Name, Method: s.Method}

	switch s.Method {
	case MethodAnalytic:
		res.Price, err = pricing.NewAnalyticPricer(c).Price(s.Spot)

	case MethodLattice:
		steps := s.Steps
		if steps == 0 {
			steps = defaultSteps
		}
		var lp *pricing.LatticePricer
		switch s.Exercise {
		case "american":
			lp, err = pricing.NewAmericanLatticePricer(c, steps)
		case "", "european":
			lp, err = pricing.NewEuropeanLatticePricer(c, steps)
		case "bermudan":
			var sched []float64
			sched, err = s.schedule()
			if err == nil {
				lp, err = pricing.NewLatticePricer(c, steps, sched)
			}
		default:
			err = fmt.Errorf("%w: unknown exercise style %q", option.ErrInvalidParameter, s.Exercise)
		}
		if err == nil {
			res.Price, err = lp.Price(s.Spot)
		}

	case MethodMonteCarlo:
		cfg := pricing.MonteCarloConfig{
			Simulations: s.Simulations,
			Steps:       s.MCSteps,
			Antithetic:  s.Antithetic,
			IncludeSpot: s.IncludeSpot,
			Seed:        s.Seed,
		}
		if cfg.Simulations == 0 {
			cfg.Simulations = defaultSimulations
		}
		if cfg.Steps == 0 {
			cfg.Steps = defaultMCSteps
		}
		var mp *pricing.MonteCarloPricer
		mp, err = pricing.NewMonteCarloPricer(c, cfg)
		if err == nil {
			var est pricing.Estimate
			est, err = mp.Price(s.Spot)
			res.Price, res.StdError = est.Value, est.StdError
		}

	default:
		err = fmt.Errorf("%w: unknown method %q", option.ErrInvalidParameter, s.Method)
	}

	if err != nil {
		return Result{}, err
	}
	res.Elapsed = time.Since(start)
	logger.Debugf("scenario %q: %s price=%.6f in %v", s.Name, s.Method, res.Price, res.Elapsed)
	return res, nil
}

// RunAll prices scenarios concurrently with at most workers in flight
// (workers <= 0 means unbounded by scenario count). Results keep the input
// order; a scenario that fails records its error and does not abort the
// rest of the batch.
func RunAll(scenarios []Scenario, workers int) []Result {
	if workers <= 0 {
		workers = len(scenarios)
	}
	results := make([]Result, len(scenarios))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, s := range scenarios {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s Scenario) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := s.Run()
			if err != nil {
				logger.Errorf("scenario %q failed: %v", s.Name, err)
				res = Result{Name: s.Name, Method: s.Method, Err: err.Error()}
			}
			results[i] = res
		}(i, s)
	}
	wg.Wait()
	return results
}
