package sourcing

import (
	"fmt"
	"strings"
)

// Mode is the transport mode used to seed freight and lead-time defaults.
type Mode int

const (
	ModeOcean Mode = iota
	ModeAir
)

// Per-kg freight heuristics. These only seed defaults; the dashboard lets the
// user override the figure, so determinism is the only invariant.
const (
	airRatePerKg   = 8.50
	oceanRatePerKg = 0.50
)

// EstimateFreight returns the baseline per-unit freight cost for a shipment
// weight under the given transport mode.
func EstimateFreight(weightKg float64, mode Mode) float64 {
	if mode == ModeAir {
		return weightKg * airRatePerKg
	}
	return weightKg * oceanRatePerKg
}

// ParseMode resolves a user-facing mode string. Empty means ocean, the
// cheaper default lane.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ocean":
		return ModeOcean, nil
	case "air":
		return ModeAir, nil
	}
	return ModeOcean, fmt.Errorf("unknown transport mode %q", s)
}

func (m Mode) String() string {
	if m == ModeAir {
		return "air"
	}
	return "ocean"
}
