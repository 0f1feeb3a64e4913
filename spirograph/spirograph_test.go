package spirograph

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/spirograph/roulette"
)

// recordingSurface 记录所有调用，仅用于测试。
type recordingSurface struct {
	w, h float64

	calls   []string
	moves   []roulette.Point
	lines   []roulette.Point
	strokes []string
	widths  []float64
	clears  [][4]float64
}

func (r *recordingSurface) BeginPath() { r.calls = append(r.calls, "beginPath") }
func (r *recordingSurface) MoveTo(x, y float64) {
	r.calls = append(r.calls, "moveTo")
	r.moves = append(r.moves, roulette.Pt(x, y))
}
func (r *recordingSurface) LineTo(x, y float64) {
	r.calls = append(r.calls, "lineTo")
	r.lines = append(r.lines, roulette.Pt(x, y))
}
func (r *recordingSurface) Stroke() { r.calls = append(r.calls, "stroke") }
func (r *recordingSurface) SetStrokeStyle(c string) {
	r.calls = append(r.calls, "setStrokeStyle")
	r.strokes = append(r.strokes, c)
}
func (r *recordingSurface) SetLineWidth(w float64) {
	r.calls = append(r.calls, "setLineWidth")
	r.widths = append(r.widths, w)
}
func (r *recordingSurface) ClearRect(x, y, w, h float64) {
	r.calls = append(r.calls, "clearRect")
	r.clears = append(r.clears, [4]float64{x, y, w, h})
}
func (r *recordingSurface) Width() float64  { return r.w }
func (r *recordingSurface) Height() float64 { return r.h }

func (r *recordingSurface) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func newTestSpirograph(t *testing.T, w, h float64) (*Spirograph, *recordingSurface) {
	t.Helper()
	rs := &recordingSurface{w: w, h: h}
	sp, err := New(rs)
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}
	return sp, rs
}

func TestNewRejectsInvalidSurface(t *testing.T) {
	var ce *ConstructionError
	if _, err := New(nil); !errors.As(err, &ce) {
		t.Fatalf("空表面应返回 ConstructionError，实际 %v", err)
	}
	for _, size := range [][2]float64{{0, 100}, {100, -1}, {math.NaN(), 10}, {math.Inf(1), 10}} {
		if _, err := New(&recordingSurface{w: size[0], h: size[1]}); !errors.As(err, &ce) {
			t.Fatalf("尺寸 %v 应返回 ConstructionError，实际 %v", size, err)
		}
	}
}

func TestClearCoversWholeSurface(t *testing.T) {
	sp, rs := newTestSpirograph(t, 640, 480)
	sp.Clear()
	if len(rs.clears) != 1 || rs.clears[0] != [4]float64{0, 0, 640, 480} {
		t.Fatalf("Clear 应清除整个表面，实际 %v", rs.clears)
	}
}

func TestDrawSingleIssuesOneLineToPerPoint(t *testing.T) {
	sp, rs := newTestSpirograph(t, 400, 400)
	// 固定圆半径 = 400/4 = 100，比值 (100-25)/25 = 3 → 一圈闭合。
	if err := sp.DrawSingle(25, 0, WithStrokeColor("red")); err != nil {
		t.Fatalf("DrawSingle 失败: %v", err)
	}
	if rs.count("beginPath") != 1 || rs.count("moveTo") != 1 || rs.count("stroke") != 1 {
		t.Fatalf("调用序列异常: begin=%d move=%d stroke=%d", rs.count("beginPath"), rs.count("moveTo"), rs.count("stroke"))
	}
	if got := len(rs.lines); got != roulette.DefaultSamples {
		t.Fatalf("期望 %d 次 lineTo，实际 %d", roulette.DefaultSamples, got)
	}
	if rs.calls[len(rs.calls)-1] != "stroke" {
		t.Fatalf("最后一次调用应为 stroke")
	}
	// 以表面中心 (200, 200) 为原点，t=0 时点为 (75, 0)。
	if d := rs.moves[0].Dist(roulette.Pt(275, 200)); d > 1e-9 {
		t.Fatalf("起点应为 (275, 200)，实际 %v", rs.moves[0])
	}
	if rs.strokes[0] != "red" {
		t.Fatalf("描边颜色应为 red，实际 %q", rs.strokes[0])
	}
}

func TestDrawSinglePhaseInDegrees(t *testing.T) {
	sp, rs := newTestSpirograph(t, 400, 400)
	if err := sp.DrawSingle(40, 30, WithPhaseDegrees(90), WithSamples(36)); err != nil {
		t.Fatalf("DrawSingle 失败: %v", err)
	}
	p := roulette.CurveParams{FixedRadius: 100, RollingRadius: 40, PenOffset: 30, PhaseAngle: math.Pi / 2, Samples: 36}
	want := roulette.Pt(200, 200).Add(p.PointAt(0))
	if d := rs.moves[0].Dist(want); d > 1e-9 {
		t.Fatalf("相位应按角度换算为弧度: got=%v want=%v", rs.moves[0], want)
	}
	if got := len(rs.lines); got != 36*2 {
		t.Fatalf("比值 1.5 应绘制两圈，实际 %d 个点", got)
	}
}

func TestDrawSingleRejectsZeroRadius(t *testing.T) {
	sp, rs := newTestSpirograph(t, 400, 400)
	err := sp.DrawSingle(0, 10)
	if !errors.Is(err, roulette.ErrInvalidParameter) {
		t.Fatalf("期望 ErrInvalidParameter，实际 %v", err)
	}
	if len(rs.calls) != 0 {
		t.Fatalf("参数无效时不应调用绘图表面: %v", rs.calls)
	}
}

func TestDrawDemoPattern(t *testing.T) {
	sp, rs := newTestSpirograph(t, 500, 400)
	if err := sp.Draw(WithSamples(120)); err != nil {
		t.Fatalf("Draw 失败: %v", err)
	}
	chain := roulette.DemoChain(500, 400, 120)
	want := 0
	for _, p := range chain {
		if p.Rotations() != 2 {
			t.Fatalf("示例层 %+v 的旋转数应为 2，实际 %d", p, p.Rotations())
		}
		want = max(want, p.Len())
	}
	if got := len(rs.lines); got != want {
		t.Fatalf("期望 %d 个点，实际 %d", want, got)
	}
	for _, pt := range rs.lines {
		if pt.X < 0 || pt.X > 500 || pt.Y < 0 || pt.Y > 400 {
			t.Fatalf("示例图案超出表面: %v", pt)
		}
	}
}

func TestDrawChainWithOrigin(t *testing.T) {
	sp, rs := newTestSpirograph(t, 300, 300)
	chain := []roulette.CurveParams{{FixedRadius: 60, RollingRadius: 20, PenOffset: 0, Samples: 30}}
	if err := sp.DrawChain(chain, WithOrigin(roulette.Pt(0, 0)), WithLineWidth(2.5)); err != nil {
		t.Fatalf("DrawChain 失败: %v", err)
	}
	if d := rs.moves[0].Dist(roulette.Pt(40, 0)); d > 1e-9 {
		t.Fatalf("原点覆盖未生效: %v", rs.moves[0])
	}
	if rs.widths[0] != 2.5 {
		t.Fatalf("线宽应为 2.5，实际 %g", rs.widths[0])
	}
	if err := sp.DrawChain(nil); !errors.Is(err, roulette.ErrEmptyChain) {
		t.Fatalf("期望 ErrEmptyChain，实际 %v", err)
	}
}

func TestDrawRosetteCentered(t *testing.T) {
	sp, rs := newTestSpirograph(t, 600, 600)
	sp.DrawRosette()
	if len(rs.lines) != 1001 {
		t.Fatalf("玫瑰线应有 1001 个点，实际 %d", len(rs.lines))
	}
	if rs.moves[0] != roulette.Pt(450, 300) {
		t.Fatalf("玫瑰线起点应为 (450, 300)，实际 %v", rs.moves[0])
	}
}

func TestGenerateRosettePath(t *testing.T) {
	svg := GenerateRosettePath()
	if !strings.Contains(svg, `d="M 400,250 `) {
		t.Fatalf("路径应以 t=0 的点开头")
	}
	if svg != GenerateRosettePath() {
		t.Fatalf("多次生成结果应一致")
	}
}

func TestDefaultStrokeOptions(t *testing.T) {
	rs := &recordingSurface{w: 100, h: 100}
	sp, err := New(rs, WithDefaultStroke("#336699", 3), WithDefaultSamples(12))
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}
	if err := sp.DrawSingle(5, 2); err != nil {
		t.Fatalf("DrawSingle 失败: %v", err)
	}
	if rs.strokes[0] != "#336699" || rs.widths[0] != 3 {
		t.Fatalf("默认描边未生效: %v %v", rs.strokes, rs.widths)
	}
	// 固定圆半径 25，滚动圆 5，比值 4 → 一圈。
	if len(rs.lines) != 12 {
		t.Fatalf("默认采样数未生效: %d", len(rs.lines))
	}
}
