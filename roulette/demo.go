package roulette

import "math"

// DemoChain returns the three-layer nested pattern drawn by the demo, with
// radii scaled to min(width, height). Each layer has ratio 1.5 or 2.5 and
// closes after two revolutions, so the composed trace closes as well.
func DemoChain(width, height float64, samples int) []CurveParams {
	if samples <= 0 {
		samples = DefaultSamples
	}
	m := math.Min(width, height)
	return []CurveParams{
		{FixedRadius: 0.30 * m, RollingRadius: 0.12 * m, PenOffset: 0.10 * m, Samples: samples, Mode: Difference},
		{FixedRadius: 0.06 * m, RollingRadius: 0.04 * m, PenOffset: 0.025 * m, Samples: samples, Mode: Sum},
		{FixedRadius: 0.035 * m, RollingRadius: 0.01 * m, PenOffset: 0.01 * m, Samples: samples, Mode: Difference},
	}
}
