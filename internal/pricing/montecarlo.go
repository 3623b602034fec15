package pricing

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/contactkeval/option-pricing/internal/option"
)

// mcBatchSize is the number of paths per reduction batch. Batches are
// combined in index order, so the result for a given seed does not depend
// on Workers or GOMAXPROCS.
const mcBatchSize = 4096

// MonteCarloConfig configures the simulation evaluator.
type MonteCarloConfig struct {
	Simulations int     // number of simulated paths m, >= 1
	Steps       int     // monitoring dates per path n, >= 1
	Antithetic  bool    // pair every draw with its negation
	IncludeSpot bool    // include the initial spot as a monitoring point
	Seed        *uint64 // nil means time-seeded; set for reproducible runs
	Workers     int     // concurrent payoff batches, 0 means GOMAXPROCS
}

// Estimate is a Monte Carlo price with its sampling uncertainty.
type Estimate struct {
	Value    float64 // discounted mean payoff
	StdError float64 // discounted Bessel-corrected standard error
}

// MonteCarloPricer prices an arithmetic-average (Asian) option by
// simulating risk-neutral GBM paths. The averaging monitors n equally
// spaced dates over (0, T]; with IncludeSpot the initial spot joins the
// average as an (n+1)th point.
type MonteCarloPricer struct {
	contract option.Contract
	cfg      MonteCarloConfig
}

// NewMonteCarloPricer validates the configuration and returns the pricer.
func NewMonteCarloPricer(c option.Contract, cfg MonteCarloConfig) (*MonteCarloPricer, error) {
	if err := validateSimulation(c, cfg); err != nil {
		return nil, err
	}
	return &MonteCarloPricer{contract: c, cfg: cfg}, nil
}

func validateSimulation(c option.Contract, cfg MonteCarloConfig) error {
	if c.Expiry() <= 0 || c.Volatility() < 0 || cfg.Steps <= 0 || cfg.Simulations <= 0 {
		return fmt.Errorf("%w: expiry=%g vol=%g steps=%d simulations=%d",
			ErrInvalidSimulationParameters, c.Expiry(), c.Volatility(), cfg.Steps, cfg.Simulations)
	}
	return nil
}

// Price simulates m paths and returns the discounted estimate and standard
// error. With an identical seed and configuration the result is
// bit-for-bit reproducible: the normal draws come from one sequential
// stream and payoff batches are merged in a fixed order, so parallelism
// never changes the arithmetic.
func (mc *MonteCarloPricer) Price(spot float64) (Estimate, error) {
	if !(spot > 0) {
		return Estimate{}, fmt.Errorf("%w: spot must be positive, got %g", option.ErrInvalidParameter, spot)
	}
	if err := validateSimulation(mc.contract, mc.cfg); err != nil {
		return Estimate{}, err
	}

	c := mc.contract
	m, n := mc.cfg.Simulations, mc.cfg.Steps
	dt := c.Expiry() / float64(n)
	drift := (c.Rate() - c.DividendYield() - 0.5*c.Volatility()*c.Volatility()) * dt
	diffusion := c.Volatility() * math.Sqrt(dt)

	z := mc.drawNormals(m, n)

	// Per-path payoff: walk the log-price, average the monitored prices,
	// apply the intrinsic payoff. Batches fill disjoint accumulators.
	type accum struct{ sum, sumSq float64 }
	numBatches := (m + mcBatchSize - 1) / mcBatchSize
	accums := make([]accum, numBatches)

	workers := mc.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(b int) {
			defer wg.Done()
			defer func() { <-sem }()
			lo := b * mcBatchSize
			hi := min(lo+mcBatchSize, m)
			var a accum
			for i := lo; i < hi; i++ {
				logS := math.Log(spot)
				sumPrices := 0.0
				for k := 0; k < n; k++ {
					logS += drift + diffusion*z[i][k]
					sumPrices += math.Exp(logS)
				}
				avg := sumPrices / float64(n)
				if mc.cfg.IncludeSpot {
					avg = (sumPrices + spot) / float64(n+1)
				}
				payoff := c.Type().Payoff(avg, c.Strike())
				a.sum += payoff
				a.sumSq += payoff * payoff
			}
			accums[b] = a
		}(b)
	}
	wg.Wait()

	var sum, sumSq float64
	for _, a := range accums {
		sum += a.sum
		sumSq += a.sumSq
	}

	mean := sum / float64(m)
	variance := 0.0
	if m > 1 {
		variance = (sumSq - float64(m)*mean*mean) / float64(m-1)
		if variance < 0 { // floating-point cancellation near zero variance
			variance = 0
		}
	}
	disc := math.Exp(-c.Rate() * c.Expiry())
	return Estimate{
		Value:    disc * mean,
		StdError: disc * math.Sqrt(variance/float64(m)),
	}, nil
}

// drawNormals produces the m×n matrix of standard-normal variates from a
// single seeded stream. Under antithetic sampling only ceil(m/2) rows are
// drawn; their negations are appended and the matrix truncated to m rows,
// so every original row has a mirrored partner.
func (mc *MonteCarloPricer) drawNormals(m, n int) [][]float64 {
	seed := uint64(time.Now().UnixNano())
	if mc.cfg.Seed != nil {
		seed = *mc.cfg.Seed
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}

	rows := m
	if mc.cfg.Antithetic {
		rows = (m + 1) / 2
	}
	z := make([][]float64, 0, m)
	for i := 0; i < rows; i++ {
		row := make([]float64, n)
		for k := range row {
			row[k] = normal.Rand()
		}
		z = append(z, row)
	}
	for i := 0; mc.cfg.Antithetic && len(z) < m; i++ {
		neg := make([]float64, n)
		for k, v := range z[i] {
			neg[k] = -v
		}
		z = append(z, neg)
	}
	return z
}
