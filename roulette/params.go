package roulette

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter reports a curve parameter outside its domain.
	ErrInvalidParameter = errors.New("roulette: invalid parameter")
	// ErrEmptyChain is returned when composing a chain without layers.
	ErrEmptyChain = errors.New("roulette: empty layer chain")
	// ErrMismatchedSamples is returned when the layers of a chain disagree on
	// the number of samples per revolution.
	ErrMismatchedSamples = errors.New("roulette: layers use different samples per revolution")
)

// Mode selects whether the rolling circle runs inside (Difference) or outside
// (Sum) the fixed circle.
type Mode int

const (
	// Difference traces a hypotrochoid.
	Difference Mode = iota
	// Sum traces an epitrochoid.
	Sum
)

func (m Mode) String() string {
	switch m {
	case Difference:
		return "difference"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the mode names used in descriptions, including the curve
// family names.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "difference", "diff", "inside", "hypotrochoid", "hypo":
		return Difference, nil
	case "sum", "outside", "epitrochoid", "epi":
		return Sum, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, s)
	}
}

// DefaultSamples is the sample density used when a caller does not pick one.
const DefaultSamples = 360

// CurveParams describes one roulette layer. Values are passed by copy; use
// NewCurveParams or Validate before handing a literal to the generator.
type CurveParams struct {
	FixedRadius   float64 `json:"fixedRadius"`
	RollingRadius float64 `json:"rollingRadius"`
	PenOffset     float64 `json:"penOffset"`
	// PhaseAngle is in radians.
	PhaseAngle float64 `json:"phaseAngle"`
	// Samples is the number of samples per revolution of t.
	Samples int  `json:"samples"`
	Mode    Mode `json:"mode"`
}

// NewCurveParams validates and returns a layer description.
func NewCurveParams(fixed, rolling, offset, phase float64, samples int, mode Mode) (CurveParams, error) {
	p := CurveParams{
		FixedRadius:   fixed,
		RollingRadius: rolling,
		PenOffset:     offset,
		PhaseAngle:    phase,
		Samples:       samples,
		Mode:          mode,
	}
	if err := p.Validate(); err != nil {
		return CurveParams{}, err
	}
	return p, nil
}

// Validate rejects parameters that would make the generator divide by zero or
// emit non-finite points.
func (p CurveParams) Validate() error {
	switch {
	case !finite(p.RollingRadius) || p.RollingRadius <= 0:
		return fmt.Errorf("%w: rolling radius must be positive, got %g", ErrInvalidParameter, p.RollingRadius)
	case !finite(p.FixedRadius) || p.FixedRadius <= 0:
		return fmt.Errorf("%w: fixed radius must be positive, got %g", ErrInvalidParameter, p.FixedRadius)
	case !finite(p.PenOffset) || p.PenOffset < 0:
		return fmt.Errorf("%w: pen offset must be non-negative, got %g", ErrInvalidParameter, p.PenOffset)
	case !finite(p.PhaseAngle):
		return fmt.Errorf("%w: phase angle must be finite, got %g", ErrInvalidParameter, p.PhaseAngle)
	case p.Samples <= 0:
		return fmt.Errorf("%w: samples per revolution must be positive, got %d", ErrInvalidParameter, p.Samples)
	case p.Mode != Difference && p.Mode != Sum:
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidParameter, p.Mode)
	}
	return nil
}

// Ratio returns (R-r)/r for Difference and (R+r)/r for Sum.
func (p CurveParams) Ratio() float64 {
	return p.span() / p.RollingRadius
}

// Rotations is the number of revolutions of t after which the curve closes.
func (p CurveParams) Rotations() int {
	return ResolveRotations(p.Ratio())
}

// NormalizedPhase folds the phase angle into [0, 2π).
func (p CurveParams) NormalizedPhase() float64 {
	a := math.Mod(p.PhaseAngle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Len is the number of points in one closed trace of p.
func (p CurveParams) Len() int {
	return p.Samples * p.Rotations()
}

func (p CurveParams) span() float64 {
	if p.Mode == Sum {
		return p.FixedRadius + p.RollingRadius
	}
	return p.FixedRadius - p.RollingRadius
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
