package pricing

import "errors"

var (
	// ErrArbitrageViolation is returned when the lattice risk-neutral
	// probability falls outside [0,1]: the CRR discretization is
	// inconsistent with no-arbitrage at the chosen step count. This is
	// deterministic for a given configuration; retrying cannot succeed.
	ErrArbitrageViolation = errors.New("risk-neutral probability outside [0,1]")

	// ErrInvalidSimulationParameters is returned for a degenerate Monte
	// Carlo configuration (non-positive simulation or step counts, expiry,
	// or negative volatility).
	ErrInvalidSimulationParameters = errors.New("invalid simulation parameters")
)
