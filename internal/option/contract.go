// Package option defines the canonical option contract value object shared
// by every pricer in this module.
//
// A Contract is validated once, at construction, and is immutable afterwards:
// pricers can assume every field satisfies its bound and never re-check.
package option

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOptionType is returned when the exercise kind is anything
	// other than Call or Put.
	ErrInvalidOptionType = errors.New("option type must be call or put")

	// ErrInvalidParameter is returned when a contract parameter violates
	// its required bound (expiry, strike, volatility, rate, dividend yield,
	// or an exercise-schedule time).
	ErrInvalidParameter = errors.New("invalid contract parameter")
)

// Type is the exercise kind of an option.
type Type string

const (
	Call Type = "call"
	Put  Type = "put"
)

// Valid reports whether t is one of the two supported exercise kinds.
func (t Type) Valid() bool { return t == Call || t == Put }

// Payoff returns the intrinsic value of exercising at asset price s
// against strike k: max(s-k, 0) for calls, max(k-s, 0) for puts.
func (t Type) Payoff(s, k float64) float64 {
	if t == Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// Contract describes the economic terms of a single option. Fields are
// unexported so a Contract cannot be mutated after New validates it.
type Contract struct {
	expiry float64 // time to expiry in years, > 0
	strike float64 // strike price, > 0
	typ    Type    // call or put
	vol    float64 // annualized volatility, > 0
	rate   float64 // continuously compounded risk-free rate, >= 0
	div    float64 // continuously compounded dividend yield, >= 0
}

// New validates the contract terms and returns the immutable contract.
// Validation failures wrap ErrInvalidOptionType or ErrInvalidParameter and
// name the offending field; they are construction-time failures only.
func New(expiry, strike float64, typ Type, vol, rate, div float64) (Contract, error) {
	if !typ.Valid() {
		return Contract{}, fmt.Errorf("%w: got %q", ErrInvalidOptionType, typ)
	}
	if !(expiry > 0) {
		return Contract{}, fmt.Errorf("%w: expiry must be positive, got %g", ErrInvalidParameter, expiry)
	}
	if !(strike > 0) {
		return Contract{}, fmt.Errorf("%w: strike must be positive, got %g", ErrInvalidParameter, strike)
	}
	if !(vol > 0) {
		return Contract{}, fmt.Errorf("%w: volatility must be positive, got %g", ErrInvalidParameter, vol)
	}
	if !(rate >= 0) {
		return Contract{}, fmt.Errorf("%w: risk-free rate must be non-negative, got %g", ErrInvalidParameter, rate)
	}
	if !(div >= 0) {
		return Contract{}, fmt.Errorf("%w: dividend yield must be non-negative, got %g", ErrInvalidParameter, div)
	}
	return Contract{expiry: expiry, strike: strike, typ: typ, vol: vol, rate: rate, div: div}, nil
}

func (c Contract) Expiry() float64        { return c.expiry }
func (c Contract) Strike() float64        { return c.strike }
func (c Contract) Type() Type             { return c.typ }
func (c Contract) Volatility() float64    { return c.vol }
func (c Contract) Rate() float64          { return c.rate }
func (c Contract) DividendYield() float64 { return c.div }

// Intrinsic is the immediate exercise payoff of the contract at asset price s.
func (c Contract) Intrinsic(s float64) float64 { return c.typ.Payoff(s, c.strike) }
