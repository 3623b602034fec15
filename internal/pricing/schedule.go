package pricing

import (
	"fmt"
	"math"

	"github.com/contactkeval/option-pricing/internal/option"
)

// mapScheduleToSteps snaps continuous exercise times onto the discrete
// lattice grid with Δt = expiry/steps.
//
// The snapping contract, in full:
//
//   - Every time must lie in (0, expiry]; anything outside that range is an
//     option.ErrInvalidParameter.
//   - Each time t maps to its nearest step k = round(t/Δt).
//   - k == steps marks exercise permitted at maturity.
//   - 1 <= k <= steps-1 marks an early-exercise step.
//   - k == 0 (t closer to now than to the first step, only possible at
//     coarse resolutions) drops the date: the lattice cannot represent it.
//   - Two distinct times that round to the same step collapse into a
//     single exercise right at that step.
//
// The last two cases are lossy and resolution-dependent; callers that need
// every requested date represented must choose a step count fine enough
// that no two dates share a step and no date rounds to zero.
func mapScheduleToSteps(schedule []float64, expiry float64, steps int) (early map[int]bool, atMaturity bool, err error) {
	dt := expiry / float64(steps)
	early = make(map[int]bool, len(schedule))
	for _, t := range schedule {
		if !(t > 0) || t > expiry {
			return nil, false, fmt.Errorf("%w: exercise time %g outside (0, %g]", option.ErrInvalidParameter, t, expiry)
		}
		k := int(math.Round(t / dt))
		switch {
		case k >= steps:
			atMaturity = true
		case k >= 1:
			early[k] = true
		}
	}
	return early, atMaturity, nil
}
