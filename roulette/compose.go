package roulette

import (
	"fmt"
	"log/slog"
)

// Compose chains the layers so that each one rides on the trace of the one
// before it, and returns the absolute trace of the last layer. Layer 0 is
// centered at origin.
//
// The result has as many points as the longest layer trace; shorter layers
// repeat cyclically.
func Compose(origin Point, chain []CurveParams) (Trace, error) {
	layers, err := ComposeLayers(origin, chain)
	if err != nil {
		return nil, err
	}
	return layers[len(layers)-1], nil
}

// ComposeLayers is like Compose but returns the absolute trace of every
// layer, each stretched to the common length.
func ComposeLayers(origin Point, chain []CurveParams) ([]Trace, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	lengths := make([]int, len(chain))
	total := 0
	for k, p := range chain {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", k, err)
		}
		if p.Samples != chain[0].Samples {
			return nil, fmt.Errorf("%w: layer %d has %d, layer 0 has %d",
				ErrMismatchedSamples, k, p.Samples, chain[0].Samples)
		}
		lengths[k] = p.Len()
		total = max(total, lengths[k])
	}

	layers := make([]Trace, len(chain))
	for k, p := range chain {
		abs := make(Trace, total)
		for i := range abs {
			base := origin
			if k > 0 {
				base = layers[k-1][i]
			}
			abs[i] = base.Add(p.PointAt(i % lengths[k]))
		}
		layers[k] = abs
	}

	Logger().Debug("composed layer chain",
		slog.Int("layers", len(chain)), slog.Int("points", total), slog.Any("lengths", lengths))
	return layers, nil
}
