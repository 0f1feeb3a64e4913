package canvassurface

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/spirograph/surface"
)

const defaultLineWidth = 1.0

// Surface 在内存中记录绘制指令（显示列表），导出时再回放到 github.com/tdewolff/canvas。
// 一个单位对应 canvas 中的 1mm；栅格输出时按 Resolution 换算像素。
type Surface struct {
	width      float64
	height     float64
	background color.Color
	resolution float64
	meta       Meta

	mu          sync.Mutex
	strokeColor color.Color
	lineWidth   float64
	path        *canvas.Path
	pathShared  bool // path 已被某个 op 引用，继续修改前需要复制
	ops         []op
}

var _ surface.Surface = (*Surface)(nil)

// op 是显示列表中的一条指令：描边一条路径，或用背景色覆盖一个矩形。
type op struct {
	path   *canvas.Path
	stroke color.Color
	width  float64

	clear      bool
	x, y, w, h float64
}

// Options 配置表面的背景与栅格分辨率。
type Options struct {
	Background string  // 为空表示白色
	Resolution float64 // 栅格导出时每单位的像素数，<=0 时为 1
}

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
}

// New 创建一个 width×height 的表面。
func New(width, height float64, opts Options) *Surface {
	bg := color.Color(canvas.White)
	if opts.Background != "" {
		bg = ParseColor(opts.Background)
	}
	res := opts.Resolution
	if res <= 0 || math.IsNaN(res) {
		res = 1
	}
	return &Surface{
		width:       width,
		height:      height,
		background:  bg,
		resolution:  res,
		strokeColor: canvas.Black,
		lineWidth:   defaultLineWidth,
	}
}

func (s *Surface) Width() float64  { return s.width }
func (s *Surface) Height() float64 { return s.height }

// SetMeta 设置导出 PDF 时写入的元信息。
func (s *Surface) SetMeta(meta Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = meta
}

func (s *Surface) BeginPath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = &canvas.Path{}
	s.pathShared = false
}

func (s *Surface) MoveTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writablePath().MoveTo(x, y)
}

// LineTo 在没有当前点时等同于 MoveTo（与 canvas 2D 上下文一致）。
func (s *Surface) LineTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.writablePath()
	if p.Empty() {
		p.MoveTo(x, y)
		return
	}
	p.LineTo(x, y)
}

func (s *Surface) Stroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == nil || s.path.Empty() {
		return
	}
	s.ops = append(s.ops, op{path: s.path, stroke: s.strokeColor, width: s.lineWidth})
	s.pathShared = true
}

func (s *Surface) SetStrokeStyle(style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokeColor = ParseColor(style)
}

func (s *Surface) SetLineWidth(w float64) {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineWidth = w
}

// ClearRect 覆盖整个表面时直接清空显示列表，否则记录一个背景色矩形。
func (s *Surface) ClearRect(x, y, w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x <= 0 && y <= 0 && x+w >= s.width && y+h >= s.height {
		s.ops = nil
		return
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.ops = append(s.ops, op{clear: true, x: x, y: y, w: w, h: h})
}

func (s *Surface) writablePath() *canvas.Path {
	if s.path == nil {
		s.path = &canvas.Path{}
	} else if s.pathShared {
		s.path = s.path.Copy()
	}
	s.pathShared = false
	return s.path
}

// Canvas 将显示列表回放到新的 canvas 上，坐标以左上角为原点。
func (s *Surface) Canvas() *canvas.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := canvas.New(s.width, s.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	s.fillRect(ctx, 0, 0, s.width, s.height)
	for _, o := range s.ops {
		if o.clear {
			s.fillRect(ctx, o.x, o.y, o.w, o.h)
			continue
		}
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(o.stroke)
		ctx.SetStrokeWidth(o.width)
		ctx.DrawPath(0, 0, o.path)
	}
	return c
}

func (s *Surface) fillRect(ctx *canvas.Context, x, y, w, h float64) {
	ctx.SetFillColor(s.background)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// Render 按格式（pdf 或 svg）输出字节。
func (s *Surface) Render(format string) ([]byte, error) {
	c := s.Canvas()
	var buf bytes.Buffer
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "pdf":
		writer := pdf.New(&buf, s.width, s.height, nil)
		s.applyMeta(writer)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case "svg":
		writer := svg.New(&buf, s.width, s.height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式：%s", format)
	}
	return buf.Bytes(), nil
}

// WriteFile 根据扩展名导出：pdf/svg 走 Render，其余（png、jpg 等）交给 renderers.Write。
func (s *Surface) WriteFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf", ".svg":
		data, err := s.Render(ext)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("写入文件 %s 失败: %w", path, err)
		}
		return nil
	case "":
		return fmt.Errorf("无法从 %s 推断输出格式", path)
	}
	if err := renderers.Write(path, s.Canvas(), canvas.DPMM(s.resolution)); err != nil {
		return fmt.Errorf("写入图像 %s 失败: %w", path, err)
	}
	return nil
}

func (s *Surface) applyMeta(writer *pdf.PDF) {
	s.mu.Lock()
	meta := s.meta
	s.mu.Unlock()
	if meta.Creator == "" {
		meta.Creator = "Spirograph"
	}
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
}
