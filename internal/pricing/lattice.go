package pricing

import (
	"fmt"
	"math"

	"github.com/contactkeval/option-pricing/internal/option"
)

// LatticePricer evaluates an option on a Cox-Ross-Rubinstein recombining
// binomial tree. European, American, and Bermudan exercise are all
// configurations of the same backward-induction algorithm; they differ only
// in which steps permit exercise.
type LatticePricer struct {
	contract option.Contract
	steps    int

	early      map[int]bool // early-exercise steps in [1, steps-1]
	atMaturity bool         // exercise permitted at step N
	allSteps   bool         // American: every step permits exercise
}

// NewLatticePricer returns a lattice pricer whose exercise rights are given
// by a schedule of continuous times in (0, expiry]. A nil or empty schedule
// means exercise at maturity only (European). Schedule times are snapped to
// lattice steps by nearest rounding; see mapScheduleToSteps for the exact
// contract, including how dates alias or drop at coarse step counts.
func NewLatticePricer(c option.Contract, steps int, schedule []float64) (*LatticePricer, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", option.ErrInvalidParameter, steps)
	}
	early, atMaturity, err := mapScheduleToSteps(schedule, c.Expiry(), steps)
	if err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		atMaturity = true
	}
	return &LatticePricer{contract: c, steps: steps, early: early, atMaturity: atMaturity}, nil
}

// NewEuropeanLatticePricer returns a lattice pricer that permits exercise
// only at maturity.
func NewEuropeanLatticePricer(c option.Contract, steps int) (*LatticePricer, error) {
	return NewLatticePricer(c, steps, nil)
}

// NewAmericanLatticePricer returns a lattice pricer that permits exercise
// at every step. It marks the steps directly rather than building and
// snapping a dense schedule.
func NewAmericanLatticePricer(c option.Contract, steps int) (*LatticePricer, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", option.ErrInvalidParameter, steps)
	}
	return &LatticePricer{contract: c, steps: steps, allSteps: true, atMaturity: true}, nil
}

func (l *LatticePricer) exercisable(step int) bool {
	if l.allSteps {
		return true
	}
	return l.early[step]
}

// Price runs CRR backward induction from maturity to the root and returns
// the option value at step 0. It returns ErrArbitrageViolation when the
// risk-neutral probability for the chosen step count falls outside [0,1].
func (l *LatticePricer) Price(spot float64) (float64, error) {
	if !(spot > 0) {
		return 0, fmt.Errorf("%w: spot must be positive, got %g", option.ErrInvalidParameter, spot)
	}
	c := l.contract
	n := l.steps

	dt := c.Expiry() / float64(n)
	u := math.Exp(c.Volatility() * math.Sqrt(dt))
	d := 1 / u
	disc := math.Exp(-c.Rate() * dt)
	p := (math.Exp((c.Rate()-c.DividendYield())*dt) - d) / (u - d)
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: p=%.6f with %d steps", ErrArbitrageViolation, p, n)
	}

	// Full asset-price lattice, stock[i][j] = spot * u^(i-j) * d^j, kept so
	// intrinsic value can be read at any step during induction.
	stock := make([][]float64, n+1)
	stock[0] = []float64{spot}
	for i := 1; i <= n; i++ {
		stock[i] = make([]float64, i+1)
		stock[i][0] = stock[i-1][0] * u
		for j := 1; j <= i; j++ {
			stock[i][j] = stock[i-1][j-1] * d
		}
	}

	// Terminal layer: payoff only where maturity exercise is permitted. A
	// Bermudan schedule that excludes maturity has zero terminal value.
	values := make([]float64, n+1)
	if l.atMaturity {
		for j := 0; j <= n; j++ {
			values[j] = c.Intrinsic(stock[n][j])
		}
	}

	// Backward induction, overwriting values in place.
	for i := n - 1; i >= 0; i-- {
		canExercise := l.exercisable(i)
		for j := 0; j <= i; j++ {
			v := disc * (p*values[j] + (1-p)*values[j+1])
			if canExercise {
				if iv := c.Intrinsic(stock[i][j]); iv > v {
					v = iv
				}
			}
			values[j] = v
		}
	}
	return values[0], nil
}
