package spirograph

import (
	"math"

	"github.com/ByLCY/spirograph/roulette"
)

// drawConfig 是单次绘制的参数，未指定的字段取 Spirograph 的默认值。
type drawConfig struct {
	phase     float64 // 弧度
	stroke    string
	lineWidth float64
	samples   int
	mode      roulette.Mode
	origin    *roulette.Point
}

// DrawOption 调整单次绘制。
type DrawOption func(*drawConfig)

// WithPhaseDegrees 以角度设置相位，内部换算为弧度。
func WithPhaseDegrees(deg float64) DrawOption {
	return func(c *drawConfig) { c.phase = deg * math.Pi / 180 }
}

// WithPhaseRadians 以弧度设置相位。
func WithPhaseRadians(rad float64) DrawOption {
	return func(c *drawConfig) { c.phase = rad }
}

func WithStrokeColor(color string) DrawOption {
	return func(c *drawConfig) {
		if color != "" {
			c.stroke = color
		}
	}
}

func WithLineWidth(w float64) DrawOption {
	return func(c *drawConfig) {
		if w > 0 {
			c.lineWidth = w
		}
	}
}

func WithSamples(n int) DrawOption {
	return func(c *drawConfig) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithMode 仅影响 DrawSingle。
func WithMode(m roulette.Mode) DrawOption {
	return func(c *drawConfig) { c.mode = m }
}

// WithOrigin 覆盖默认的表面中心原点。
func WithOrigin(p roulette.Point) DrawOption {
	return func(c *drawConfig) { c.origin = &p }
}

func (sp *Spirograph) drawConfig(opts []DrawOption) drawConfig {
	cfg := drawConfig{
		stroke:    sp.stroke,
		lineWidth: sp.lineWidth,
		samples:   sp.samples,
		mode:      roulette.Difference,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
