// Package spirograph 将曲线生成与具体绘图表面连接起来：
// 构造时绑定一个 surface.Surface，之后每次绘制都重新计算轨迹，不缓存任何结果。
package spirograph

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ByLCY/spirograph/roulette"
	"github.com/ByLCY/spirograph/surface"
)

const (
	defaultStroke    = "#000000"
	defaultLineWidth = 1.0
)

// ConstructionError 表示无法绑定到有效的 2D 绘图表面。
type ConstructionError struct {
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spirograph: %s: %v", e.Reason, e.Err)
	}
	return "spirograph: " + e.Reason
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Spirograph 绑定一个绘图表面，本身不做并发保护。
type Spirograph struct {
	surface   surface.Surface
	samples   int
	stroke    string
	lineWidth float64
}

// Option 调整 Spirograph 的默认绘制参数。
type Option func(*Spirograph)

// WithDefaultSamples 设置每圈采样数（默认 roulette.DefaultSamples）。
func WithDefaultSamples(n int) Option {
	return func(sp *Spirograph) {
		if n > 0 {
			sp.samples = n
		}
	}
}

// WithDefaultStroke 设置默认描边颜色与线宽。
func WithDefaultStroke(color string, width float64) Option {
	return func(sp *Spirograph) {
		if color != "" {
			sp.stroke = color
		}
		if width > 0 {
			sp.lineWidth = width
		}
	}
}

// New 绑定绘图表面。表面为空或没有可绘制区域时返回 *ConstructionError。
func New(s surface.Surface, opts ...Option) (*Spirograph, error) {
	if s == nil {
		return nil, &ConstructionError{Reason: "绘图表面为空"}
	}
	w, h := s.Width(), s.Height()
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, &ConstructionError{Reason: fmt.Sprintf("绘图表面尺寸无效：%gx%g", w, h)}
	}
	sp := &Spirograph{
		surface:   s,
		samples:   roulette.DefaultSamples,
		stroke:    defaultStroke,
		lineWidth: defaultLineWidth,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp, nil
}

// Surface 返回绑定的绘图表面。
func (sp *Spirograph) Surface() surface.Surface { return sp.surface }

// Center 是表面中心，作为第 0 层的默认原点。
func (sp *Spirograph) Center() roulette.Point {
	return roulette.Pt(sp.surface.Width()/2, sp.surface.Height()/2)
}

// Clear 清空整个表面。
func (sp *Spirograph) Clear() {
	sp.surface.ClearRect(0, 0, sp.surface.Width(), sp.surface.Height())
}

// DrawSingle 以 width/4 为固定圆半径画一层内旋轮线。
// innerRadius 为滚动圆半径，offset 为笔尖偏移；相位用 WithPhaseDegrees 以角度传入。
func (sp *Spirograph) DrawSingle(innerRadius, offset float64, opts ...DrawOption) error {
	cfg := sp.drawConfig(opts)
	p, err := roulette.NewCurveParams(sp.surface.Width()/4, innerRadius, offset, cfg.phase, cfg.samples, cfg.mode)
	if err != nil {
		return err
	}
	return sp.drawChain([]roulette.CurveParams{p}, cfg)
}

// Draw 画固定的三层嵌套示例图案，尺寸随表面大小缩放。
func (sp *Spirograph) Draw(opts ...DrawOption) error {
	cfg := sp.drawConfig(opts)
	chain := roulette.DemoChain(sp.surface.Width(), sp.surface.Height(), cfg.samples)
	return sp.drawChain(chain, cfg)
}

// DrawChain 画任意层链的最后一层轨迹。
func (sp *Spirograph) DrawChain(chain []roulette.CurveParams, opts ...DrawOption) error {
	return sp.drawChain(chain, sp.drawConfig(opts))
}

func (sp *Spirograph) drawChain(chain []roulette.CurveParams, cfg drawConfig) error {
	origin := sp.Center()
	if cfg.origin != nil {
		origin = *cfg.origin
	}
	trace, err := roulette.Compose(origin, chain)
	if err != nil {
		return err
	}
	sp.strokeTrace(trace, cfg)
	return nil
}

// DrawRosette 画固定玫瑰线，默认以表面中心为圆心。
func (sp *Spirograph) DrawRosette(opts ...DrawOption) {
	cfg := sp.drawConfig(opts)
	center := sp.Center()
	if cfg.origin != nil {
		center = *cfg.origin
	}
	sp.strokeTrace(roulette.Rosette(roulette.RosetteOptions{Center: center}), cfg)
}

// DrawTrace 以一次 MoveTo 加每点一次 LineTo 的方式描边给定折线。
func (sp *Spirograph) DrawTrace(trace roulette.Trace, opts ...DrawOption) {
	sp.strokeTrace(trace, sp.drawConfig(opts))
}

func (sp *Spirograph) strokeTrace(trace roulette.Trace, cfg drawConfig) {
	if len(trace) == 0 {
		return
	}
	s := sp.surface
	s.BeginPath()
	s.SetStrokeStyle(cfg.stroke)
	s.SetLineWidth(cfg.lineWidth)
	s.MoveTo(trace[0].X, trace[0].Y)
	for _, pt := range trace {
		s.LineTo(pt.X, pt.Y)
	}
	s.Stroke()
	roulette.Logger().Debug("stroked trace", slog.Int("points", len(trace)), slog.String("stroke", cfg.stroke))
}

// GenerateRosettePath 返回固定玫瑰线的 SVG 文档，与任何绘图表面无关。
func GenerateRosettePath() string {
	return roulette.RosetteSVG()
}
