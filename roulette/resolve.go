package roulette

import (
	"log/slog"
	"math"
)

const (
	// FallbackRotations is returned when no convergent approximates the
	// ratio closely enough. It bounds the rendering cost of irrational or
	// high-period ratios; such traces may not close exactly.
	FallbackRotations = 100

	maxConvergents     = 10
	rotationsTolerance = 1e-4
)

// ResolveRotations returns how many full revolutions of the parametrizing
// angle are needed before a curve with the given frequency ratio closes.
//
// The convergents are built from the integer part of ratio only: the
// fractional remainder is never inverted, so the walk differs from a textbook
// continued fraction. It finds q for ratios on the sequence
// a, (a²+1)/a, ... with a = ⌊ratio⌋ (for example 3/2, 5/3, 8/5 when a is 1) and
// falls back to FallbackRotations for everything else, 5/4 included.
// NaN and infinities also fall back; negative ratios use their magnitude.
func ResolveRotations(ratio float64) int {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		Logger().Debug("rotation ratio is not finite, using fallback",
			slog.Float64("ratio", ratio), slog.Int("rotations", FallbackRotations))
		return FallbackRotations
	}
	ratio = math.Abs(ratio)
	whole := math.Floor(ratio)

	n, d := 1.0, 0.0
	prevN, prevD := 0.0, 1.0
	for range maxConvergents {
		n, prevN = prevN+whole*n, n
		d, prevD = prevD+whole*d, d
		if d != 0 && math.Abs(ratio-n/d) < rotationsTolerance {
			return int(math.Round(d))
		}
	}

	Logger().Debug("rotation resolver did not converge, using fallback",
		slog.Float64("ratio", ratio), slog.Int("rotations", FallbackRotations))
	return FallbackRotations
}
