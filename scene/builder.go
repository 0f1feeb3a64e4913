package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/spirograph/binding"
	"github.com/ByLCY/spirograph/dsl"
	"github.com/ByLCY/spirograph/roulette"
)

const (
	defaultSurfaceSize = 500.0
	defaultBackground  = "#ffffff"
	defaultStroke      = "#000000"
	defaultLineWidth   = 1.0
)

// Build 根据 DSL AST 与绑定数据生成表面设置和绘制指令。
// 每一层参数都经 roulette.NewCurveParams 校验，错误信息带有源文件行号。
func Build(doc *dsl.Document, data any, opts Options) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	surface, err := resolveSurface(doc, data)
	if err != nil {
		return nil, err
	}
	palette, err := collectPalette(doc)
	if err != nil {
		return nil, err
	}

	b := &builder{
		data:    data,
		surface: surface,
		palette: palette,
		samples: opts.DefaultSamples,
		debug:   opts.Debug,
	}
	if b.samples <= 0 {
		b.samples = roulette.DefaultSamples
	}

	var drawings []Drawing
	for _, section := range doc.Sections {
		if section.Draw == nil {
			continue
		}
		d, err := b.drawing(section.Draw)
		if err != nil {
			return nil, err
		}
		drawings = append(drawings, d)
	}

	return &Result{
		Meta:     collectMeta(doc, data),
		Surface:  surface,
		Palette:  palette,
		Drawings: drawings,
	}, nil
}

// builder 保存构建绘制指令时共享的上下文。
type builder struct {
	data    any
	surface SurfaceSpec
	palette map[string]string
	samples int
	debug   DebugOptions
}

// reference 是百分比长度的参照尺寸。
func (b *builder) reference() float64 {
	return math.Min(b.surface.Width, b.surface.Height)
}

func (b *builder) drawing(section *dsl.DrawSection) (Drawing, error) {
	line := section.Pos.Line
	attrs := mergeAttributes(section.Args, section.Block)

	d := Drawing{
		Kind:      Kind(section.Kind),
		Line:      line,
		Stroke:    defaultStroke,
		LineWidth: defaultLineWidth,
		Samples:   b.samples,
	}
	fail := func(err error) (Drawing, error) {
		return Drawing{}, fmt.Errorf("第 %d 行 %s: %w", line, section.Kind, err)
	}

	if v := attrs["stroke"]; v != nil {
		d.Stroke = b.color(v)
	}
	if v := attrs["width"]; v != nil {
		w, err := b.length(v, b.reference())
		if err != nil {
			return fail(fmt.Errorf("width: %w", err))
		}
		if !(w > 0) {
			return fail(fmt.Errorf("线宽必须为正数，实际为 %g", w))
		}
		d.LineWidth = w
	}
	if v := attrs["samples"]; v != nil {
		n, err := b.count(v)
		if err != nil {
			return fail(fmt.Errorf("samples: %w", err))
		}
		d.Samples = n
	}
	origin, err := b.origin(attrs)
	if err != nil {
		return fail(err)
	}
	d.Origin = origin

	switch d.Kind {
	case KindChain:
		layers, raws, err := b.chainLayers(section.Block, d.Samples)
		if err != nil {
			return fail(err)
		}
		d.Layers = layers
		if b.debug.RawValues {
			d.Debug = &DrawingDebug{Layers: raws}
		}
	case KindSingle:
		p, err := b.singleLayer(attrs, d.Samples)
		if err != nil {
			return fail(err)
		}
		d.Layers = []roulette.CurveParams{p}
	case KindDemo:
		d.Layers = roulette.DemoChain(b.surface.Width, b.surface.Height, d.Samples)
	case KindRosette:
		d.Points = len(roulette.Rosette(roulette.RosetteOptions{}))
	default:
		return fail(fmt.Errorf("未知的绘制类型"))
	}

	for _, p := range d.Layers {
		d.Rotations = append(d.Rotations, p.Rotations())
		d.Points = max(d.Points, p.Len())
	}
	if b.debug.RawValues {
		if d.Debug == nil {
			d.Debug = &DrawingDebug{}
		}
		d.Debug.Attributes = rawAttributes(attrs)
	}
	return d, nil
}

// chainLayers 解析 `layer <mode>? { fixed rolling offset phase samples mode }`。
func (b *builder) chainLayers(block *dsl.Block, samples int) ([]roulette.CurveParams, []map[string]string, error) {
	if block == nil {
		return nil, nil, roulette.ErrEmptyChain
	}
	var (
		layers []roulette.CurveParams
		raws   []map[string]string
	)
	for _, stmt := range block.Statements {
		if stmt.Command == nil || !strings.EqualFold(stmt.Command.Name, "layer") {
			continue
		}
		cmd := stmt.Command
		attrs := mergeAttributes(nil, cmd.Block)
		modeName := ""
		if len(cmd.Args) > 0 {
			modeName = cmd.Args[0].Value
		}
		p, err := b.layer(attrs, modeName, samples)
		if err != nil {
			return nil, nil, fmt.Errorf("第 %d 行 layer: %w", cmd.Pos.Line, err)
		}
		if len(layers) > 0 && p.Samples != layers[0].Samples {
			return nil, nil, fmt.Errorf("第 %d 行 layer: %w: %d 与第一层的 %d 不一致",
				cmd.Pos.Line, roulette.ErrMismatchedSamples, p.Samples, layers[0].Samples)
		}
		layers = append(layers, p)
		raws = append(raws, rawAttributes(attrs))
	}
	if len(layers) == 0 {
		return nil, nil, roulette.ErrEmptyChain
	}
	return layers, raws, nil
}

func (b *builder) layer(attrs map[string]*dsl.Value, modeName string, samples int) (roulette.CurveParams, error) {
	ref := b.reference()
	fixed, err := b.requiredLength(attrs, "fixed", ref)
	if err != nil {
		return roulette.CurveParams{}, err
	}
	rolling, err := b.requiredLength(attrs, "rolling", ref)
	if err != nil {
		return roulette.CurveParams{}, err
	}
	return b.curve(attrs, fixed, rolling, modeName, samples)
}

// singleLayer 的固定圆半径总是表面宽度的四分之一。
func (b *builder) singleLayer(attrs map[string]*dsl.Value, samples int) (roulette.CurveParams, error) {
	rolling, err := b.requiredLength(attrs, "rolling", b.reference())
	if err != nil {
		return roulette.CurveParams{}, err
	}
	return b.curve(attrs, b.surface.Width/4, rolling, "", samples)
}

func (b *builder) curve(attrs map[string]*dsl.Value, fixed, rolling float64, modeName string, samples int) (roulette.CurveParams, error) {
	var (
		offset, phase float64
		err           error
	)
	if v := attrs["offset"]; v != nil {
		if offset, err = b.length(v, b.reference()); err != nil {
			return roulette.CurveParams{}, fmt.Errorf("offset: %w", err)
		}
	}
	if v := attrs["phase"]; v != nil {
		if phase, err = b.angle(v); err != nil {
			return roulette.CurveParams{}, fmt.Errorf("phase: %w", err)
		}
	}
	if v := attrs["samples"]; v != nil {
		if samples, err = b.count(v); err != nil {
			return roulette.CurveParams{}, fmt.Errorf("samples: %w", err)
		}
	}
	if v := attrs["mode"]; v != nil {
		modeName = b.text(v)
	}
	mode := roulette.Difference
	if modeName != "" {
		if mode, err = roulette.ParseMode(strings.ToLower(modeName)); err != nil {
			return roulette.CurveParams{}, err
		}
	}
	return roulette.NewCurveParams(fixed, rolling, offset, phase, samples, mode)
}

// origin 读取 x/y 属性；x 的百分比相对表面宽度，y 相对高度。
func (b *builder) origin(attrs map[string]*dsl.Value) (*roulette.Point, error) {
	xv, yv := attrs["x"], attrs["y"]
	if xv == nil && yv == nil {
		return nil, nil
	}
	if xv == nil || yv == nil {
		return nil, fmt.Errorf("x 与 y 需要同时指定")
	}
	x, err := b.length(xv, b.surface.Width)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := b.length(yv, b.surface.Height)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	p := roulette.Pt(x, y)
	return &p, nil
}

func (b *builder) requiredLength(attrs map[string]*dsl.Value, key string, reference float64) (float64, error) {
	v := attrs[key]
	if v == nil {
		return 0, fmt.Errorf("缺少 %s", key)
	}
	l, err := b.length(v, reference)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return l, nil
}

func (b *builder) length(v *dsl.Value, reference float64) (float64, error) {
	q, err := b.quantity(v)
	if err != nil {
		return 0, err
	}
	return q.Length(reference)
}

func (b *builder) angle(v *dsl.Value) (float64, error) {
	q, err := b.quantity(v)
	if err != nil {
		return 0, err
	}
	return q.Radians()
}

func (b *builder) count(v *dsl.Value) (int, error) {
	q, err := b.quantity(v)
	if err != nil {
		return 0, err
	}
	return q.Count()
}

// quantity 求值数字字面量、数据路径（data.a.b[0]）或插值后的字符串。
func (b *builder) quantity(v *dsl.Value) (Quantity, error) {
	switch {
	case v.Number != nil:
		return ParseQuantity(*v.Number)
	case v.String != nil:
		return ParseQuantity(binding.Interpolate(string(*v.String), b.data))
	case v.Expr != nil:
		path := dataPath(v.Expr.String())
		if raw, ok := binding.Lookup(b.data, path); ok {
			if s, isString := raw.(string); isString {
				return ParseQuantity(s)
			}
		}
		f, err := binding.Number(b.data, path)
		if err != nil {
			return Quantity{}, err
		}
		return Quantity{Value: f}, nil
	default:
		return Quantity{}, fmt.Errorf("%q 不是数值", valueToString(v))
	}
}

// text 求值标识符或字符串，数据路径取其文本值。
func (b *builder) text(v *dsl.Value) string {
	switch {
	case v.String != nil:
		return binding.Interpolate(string(*v.String), b.data)
	case v.Expr != nil:
		raw := v.Expr.String()
		if strings.HasPrefix(raw, "data.") {
			if val, ok := binding.Lookup(b.data, dataPath(raw)); ok {
				return fmt.Sprint(val)
			}
		}
		return raw
	default:
		return valueToString(v)
	}
}

// color 优先匹配调色板名称，否则原样交给绘图表面解析。
func (b *builder) color(v *dsl.Value) string {
	name := b.text(v)
	if c, ok := b.palette[name]; ok {
		return c
	}
	return name
}

func dataPath(expr string) string {
	return strings.TrimPrefix(strings.TrimSpace(expr), "data.")
}

// mergeAttributes 合并头部的 key value 参数与块内赋值，块内赋值优先。
func mergeAttributes(args []*dsl.Lexeme, block *dsl.Block) map[string]*dsl.Value {
	out := map[string]*dsl.Value{}
	for i := 0; i+1 < len(args); i += 2 {
		out[strings.ToLower(args[i].Value)] = lexemeValue(args[i+1])
	}
	if block == nil {
		return out
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		out[strings.ToLower(stmt.Assignment.Key)] = stmt.Assignment.Value
	}
	return out
}

// lexemeValue 将单个参数 token 转成与赋值右侧相同的 Value。
func lexemeValue(l *dsl.Lexeme) *dsl.Value {
	switch l.Type {
	case "Number":
		n := l.Value
		return &dsl.Value{Number: &n}
	case "Color":
		c := l.Value
		return &dsl.Value{Color: &c}
	case "String":
		s := dsl.StringLiteral(l.Value)
		return &dsl.Value{String: &s}
	default:
		return &dsl.Value{Expr: &dsl.Expression{Parts: []*dsl.Lexeme{l}}}
	}
}

func rawAttributes(attrs map[string]*dsl.Value) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = valueToString(v)
	}
	return out
}

func resolveSurface(doc *dsl.Document, data any) (SurfaceSpec, error) {
	spec := SurfaceSpec{
		Width:      defaultSurfaceSize,
		Height:     defaultSurfaceSize,
		Background: defaultBackground,
		Resolution: 1,
	}
	section := firstSurface(doc)
	if section == nil {
		return spec, nil
	}
	b := &builder{data: data}
	dims := []*float64{&spec.Width, &spec.Height}
	for i, arg := range section.Args {
		if i >= len(dims) {
			return spec, fmt.Errorf("surface 参数过多：%s", arg.Value)
		}
		q, err := ParseQuantity(arg.Value)
		if err != nil {
			return spec, fmt.Errorf("surface: %w", err)
		}
		if *dims[i], err = q.Length(0); err != nil {
			return spec, fmt.Errorf("surface: %w", err)
		}
	}
	if len(section.Args) == 1 {
		spec.Height = spec.Width
	}

	attrs := mergeAttributes(nil, section.Block)
	for key, dst := range map[string]*float64{"width": &spec.Width, "height": &spec.Height, "resolution": &spec.Resolution} {
		v := attrs[key]
		if v == nil {
			continue
		}
		q, err := b.quantity(v)
		if err != nil {
			return spec, fmt.Errorf("surface %s: %w", key, err)
		}
		if *dst, err = q.Length(0); err != nil {
			return spec, fmt.Errorf("surface %s: %w", key, err)
		}
	}
	if v := attrs["background"]; v != nil {
		spec.Background = b.text(v)
	}
	if !(spec.Width > 0) || !(spec.Height > 0) || math.IsInf(spec.Width, 0) || math.IsInf(spec.Height, 0) {
		return spec, fmt.Errorf("surface 尺寸无效：%gx%g", spec.Width, spec.Height)
	}
	if !(spec.Resolution > 0) {
		return spec, fmt.Errorf("surface 分辨率必须为正数，实际为 %g", spec.Resolution)
	}
	return spec, nil
}

func firstSurface(doc *dsl.Document) *dsl.SurfaceSection {
	for _, section := range doc.Sections {
		if section.Surface != nil {
			return section.Surface
		}
	}
	return nil
}

func collectPalette(doc *dsl.Document) (map[string]string, error) {
	palette := map[string]string{}
	for _, section := range doc.Sections {
		if section.Palette == nil || section.Palette.Block == nil {
			continue
		}
		for _, stmt := range section.Palette.Block.Statements {
			if stmt.Command == nil || stmt.Command.Name != "color" {
				continue
			}
			name, value := parseColorResource(stmt.Command)
			if name == "" || value == "" {
				continue
			}
			if err := checkColor(value); err != nil {
				return nil, fmt.Errorf("第 %d 行 palette: %w", stmt.Command.Pos.Line, err)
			}
			palette[name] = value
		}
	}
	return palette, nil
}

// parseColorResource 读取 `color Name = #hex`，第一个参数为名称，最后一个为值。
func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

// checkColor 只校验十六进制写法，颜色名交给绘图表面解析。
func checkColor(value string) error {
	if !strings.HasPrefix(value, "#") {
		return nil
	}
	hex := value[1:]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return fmt.Errorf("颜色格式错误：%s", value)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return fmt.Errorf("颜色格式错误：%s", value)
	}
	return nil
}

func collectMeta(doc *dsl.Document, data any) DocumentMeta {
	meta := DocumentMeta{
		Title:   doc.Name,
		Creator: "Spirograph",
	}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			val := stmt.Assignment.Value
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = binding.Interpolate(valueToString(val), data)
			case "author":
				meta.Author = binding.Interpolate(valueToString(val), data)
			case "subject":
				meta.Subject = binding.Interpolate(valueToString(val), data)
			case "creator":
				meta.Creator = binding.Interpolate(valueToString(val), data)
			case "keywords":
				for _, kw := range valueToStringSlice(val) {
					meta.Keywords = append(meta.Keywords, binding.Interpolate(kw, data))
				}
			}
		}
	}
	return meta
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		return val.Expr.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
