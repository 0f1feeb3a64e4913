package scene

import "github.com/ByLCY/spirograph/roulette"

// 该文件定义场景构建结果，供绘制、导出与调试 JSON 共用。

// Result 保存表面设置与按顺序执行的绘制指令。
type Result struct {
	Meta     DocumentMeta      `json:"meta"`
	Surface  SurfaceSpec       `json:"surface"`
	Palette  map[string]string `json:"palette"`
	Drawings []Drawing         `json:"drawings"`
}

// SurfaceSpec 描述绘图表面，单位与曲线半径一致。
type SurfaceSpec struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	Resolution float64 `json:"resolution"` // 栅格导出时每单位像素数
}

// Kind 标识绘制指令类型。
type Kind string

const (
	KindChain   Kind = "chain"
	KindSingle  Kind = "single"
	KindDemo    Kind = "demo"
	KindRosette Kind = "rosette"
)

// Drawing 是一条已解析、已校验的绘制指令。
// chain/single 的 Layers 已通过 roulette 校验；demo 与 rosette 不携带层。
type Drawing struct {
	Kind      Kind                   `json:"kind"`
	Line      int                    `json:"line"` // 源文件行号
	Layers    []roulette.CurveParams `json:"layers,omitempty"`
	Rotations []int                  `json:"rotations,omitempty"`
	Points    int                    `json:"points"` // 最终轨迹点数
	Samples   int                    `json:"samples"`
	Stroke    string                 `json:"stroke"`
	LineWidth float64                `json:"lineWidth"`
	Origin    *roulette.Point        `json:"origin,omitempty"` // 为空表示表面中心
	Debug     *DrawingDebug          `json:"debug,omitempty"`
}

// DrawingDebug 仅在 DebugOptions.RawValues 开启时输出。
type DrawingDebug struct {
	Attributes map[string]string   `json:"attributes,omitempty"`
	Layers     []map[string]string `json:"layers,omitempty"`
}

// DocumentMeta 保存导出文件的元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
