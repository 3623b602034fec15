// Package pricing implements the three pricing engines of this module:
// the closed-form Black-Scholes-Merton evaluator, the generalized CRR
// lattice evaluator (European/American/Bermudan as configurations of one
// backward-induction algorithm), and the Monte Carlo evaluator for
// arithmetic-average payoffs.
//
// Every pricer is a pure function of (contract, spot, configuration) with
// no state shared across Price calls, so pricers are safe for concurrent
// use from multiple goroutines.
package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/contactkeval/option-pricing/internal/option"
)

// AnalyticPricer evaluates a European option in closed form under the
// Black-Scholes-Merton model with continuous dividend yield.
type AnalyticPricer struct {
	contract option.Contract
}

// NewAnalyticPricer returns an analytic pricer for the given contract.
func NewAnalyticPricer(c option.Contract) *AnalyticPricer {
	return &AnalyticPricer{contract: c}
}

// Price returns the Black-Scholes-Merton value of the option at the given
// spot price:
//
//	d1 = [ln(S/K) + (r - q + σ²/2)T] / (σ√T),  d2 = d1 - σ√T
//	call = S·e^(-qT)·Φ(d1) - K·e^(-rT)·Φ(d2)
//	put  = K·e^(-rT)·Φ(-d2) - S·e^(-qT)·Φ(-d1)
//
// Deterministic and side-effect free.
func (a *AnalyticPricer) Price(spot float64) (float64, error) {
	if !(spot > 0) {
		return 0, fmt.Errorf("%w: spot must be positive, got %g", option.ErrInvalidParameter, spot)
	}
	c := a.contract
	sigT := c.Volatility() * math.Sqrt(c.Expiry())
	d1 := (math.Log(spot/c.Strike()) + (c.Rate()-c.DividendYield()+0.5*c.Volatility()*c.Volatility())*c.Expiry()) / sigT
	d2 := d1 - sigT

	discS := spot * math.Exp(-c.DividendYield()*c.Expiry())
	discK := c.Strike() * math.Exp(-c.Rate()*c.Expiry())

	switch c.Type() {
	case option.Call:
		return discS*normCDF(d1) - discK*normCDF(d2), nil
	case option.Put:
		return discK*normCDF(-d2) - discS*normCDF(-d1), nil
	default:
		// unreachable for a validated contract
		return 0, fmt.Errorf("%w: got %q", option.ErrInvalidOptionType, c.Type())
	}
}

// normCDF is the standard normal cumulative distribution function Φ.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
