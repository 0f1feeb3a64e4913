package roulette

import (
	"iter"
	"math"
)

// PointAt evaluates sample i of the layer, relative to the layer center.
// t advances by 2π/Samples per index.
func (p CurveParams) PointAt(i int) Point {
	t := (2 * math.Pi / float64(p.Samples)) * float64(i)
	span := p.span()
	k := span / p.RollingRadius
	phi := k * (t + p.PhaseAngle)

	if p.Mode == Sum {
		return Point{
			X: span*math.Cos(t) - p.PenOffset*math.Cos(phi),
			Y: span*math.Sin(t) - p.PenOffset*math.Sin(phi),
		}
	}
	return Point{
		X: span*math.Cos(t) + p.PenOffset*math.Cos(phi),
		Y: span*math.Sin(t) + p.PenOffset*math.Sin(phi),
	}
}

// Generate yields Samples*rotations points of the layer, starting at t = 0.
// The sequence is lazy and can be ranged over any number of times with the
// same result. The point that would close the curve (index
// Samples*rotations) is not included.
func Generate(p CurveParams, rotations int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if rotations <= 0 || p.Samples <= 0 {
			return
		}
		total := p.Samples * rotations
		for i := 0; i < total; i++ {
			if !yield(p.PointAt(i)) {
				return
			}
		}
	}
}

// TraceOf validates p and collects one closed period of it.
func TraceOf(p CurveParams) (Trace, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rotations := p.Rotations()
	trace := make(Trace, 0, p.Samples*rotations)
	for pt := range Generate(p, rotations) {
		trace = append(trace, pt)
	}
	return trace, nil
}
