package canvassurface

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"
)

func drawTriangle(s *Surface) {
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(90, 10)
	s.LineTo(50, 80)
	s.Stroke()
}

func TestStrokeRecordsStyle(t *testing.T) {
	s := New(100, 100, Options{})
	s.SetStrokeStyle("#ff0000")
	s.SetLineWidth(3)
	drawTriangle(s)

	if len(s.ops) != 1 {
		t.Fatalf("期望 1 条描边指令，实际 %d", len(s.ops))
	}
	got := s.ops[0]
	if got.width != 3 {
		t.Fatalf("线宽应为 3，实际 %g", got.width)
	}
	if r, g, b, _ := got.stroke.RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("描边颜色应为红色，实际 %v", got.stroke)
	}
}

func TestStrokeWithoutPathIsIgnored(t *testing.T) {
	s := New(100, 100, Options{})
	s.Stroke()
	s.BeginPath()
	s.Stroke()
	if len(s.ops) != 0 {
		t.Fatalf("空路径不应产生描边，实际 %d", len(s.ops))
	}
}

func TestStrokedPathIsNotMutatedLater(t *testing.T) {
	s := New(100, 100, Options{})
	drawTriangle(s)
	before := s.ops[0].path.String()
	s.LineTo(0, 0)
	s.Stroke()
	if s.ops[0].path.String() != before {
		t.Fatalf("已记录的路径被后续 LineTo 修改")
	}
	if len(s.ops) != 2 {
		t.Fatalf("期望 2 条描边指令，实际 %d", len(s.ops))
	}
}

func TestClearRect(t *testing.T) {
	s := New(100, 80, Options{})
	drawTriangle(s)
	s.ClearRect(10, 10, 20, 20)
	if len(s.ops) != 2 || !s.ops[1].clear {
		t.Fatalf("局部清除应记录为背景矩形: %+v", s.ops)
	}
	s.ClearRect(0, 0, s.Width(), s.Height())
	if len(s.ops) != 0 {
		t.Fatalf("整面清除后显示列表应为空，实际 %d", len(s.ops))
	}
}

func TestInvalidLineWidthIsIgnored(t *testing.T) {
	s := New(100, 100, Options{})
	s.SetLineWidth(0)
	s.SetLineWidth(-2)
	if s.lineWidth != defaultLineWidth {
		t.Fatalf("非法线宽不应生效，实际 %g", s.lineWidth)
	}
}

func TestRenderFormats(t *testing.T) {
	s := New(120, 90, Options{Background: "#fafafa"})
	s.SetMeta(Meta{Title: "triangle"})
	drawTriangle(s)

	data, err := s.Render("svg")
	if err != nil {
		t.Fatalf("渲染 SVG 失败: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("SVG 输出缺少 <svg 标签")
	}

	data, err = s.Render("pdf")
	if err != nil {
		t.Fatalf("渲染 PDF 失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("PDF 输出缺少文件头")
	}

	if _, err := s.Render("bmp"); err == nil {
		t.Fatalf("不支持的格式应返回错误")
	}
}

func TestWriteFileSVG(t *testing.T) {
	s := New(50, 50, Options{})
	drawTriangle(s)
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("输出文件为空: %v", err)
	}
	if err := s.WriteFile(filepath.Join(t.TempDir(), "noext")); err == nil {
		t.Fatalf("缺少扩展名时应返回错误")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.Color{
		"black":       canvas.Black,
		" Steelblue ": canvas.Steelblue,
		"#0F62FE":     canvas.Hex("#0f62fe"),
		"#abc":        canvas.Hex("#abc"),
		"not-a-color": canvas.Black,
		"#12":         canvas.Black,
		"#zzzzzz":     canvas.Black,
	}
	for in, want := range cases {
		if got := ParseColor(in); got != want {
			t.Fatalf("ParseColor(%q) = %v，期望 %v", in, got, want)
		}
	}
}
