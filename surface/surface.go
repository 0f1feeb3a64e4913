package surface

// Surface 是绘图表面的最小能力集合，语义与 HTML canvas 的 2D 上下文一致。
// 坐标原点在左上角，单位由具体实现决定。
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	SetStrokeStyle(color string)
	SetLineWidth(w float64)
	ClearRect(x, y, w, h float64)
	Width() float64
	Height() float64
}
