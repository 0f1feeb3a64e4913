package spirograph

import (
	"fmt"

	"github.com/ByLCY/spirograph/scene"
)

// Play 按顺序执行场景中的绘制指令，遇到第一个错误即停止。
func (sp *Spirograph) Play(res *scene.Result) error {
	if res == nil {
		return nil
	}
	for i, d := range res.Drawings {
		if err := sp.playDrawing(d); err != nil {
			return fmt.Errorf("第 %d 条绘制指令（%s，第 %d 行）: %w", i+1, d.Kind, d.Line, err)
		}
	}
	return nil
}

func (sp *Spirograph) playDrawing(d scene.Drawing) error {
	opts := []DrawOption{
		WithStrokeColor(d.Stroke),
		WithLineWidth(d.LineWidth),
		WithSamples(d.Samples),
	}
	if d.Origin != nil {
		opts = append(opts, WithOrigin(*d.Origin))
	}

	switch d.Kind {
	case scene.KindChain:
		return sp.DrawChain(d.Layers, opts...)
	case scene.KindSingle:
		if len(d.Layers) != 1 {
			return fmt.Errorf("single 需要恰好一层，实际 %d 层", len(d.Layers))
		}
		p := d.Layers[0]
		opts = append(opts, WithPhaseRadians(p.PhaseAngle), WithMode(p.Mode), WithSamples(p.Samples))
		return sp.DrawSingle(p.RollingRadius, p.PenOffset, opts...)
	case scene.KindDemo:
		return sp.Draw(opts...)
	case scene.KindRosette:
		sp.DrawRosette(opts...)
		return nil
	default:
		return fmt.Errorf("未知的绘制类型 %q", d.Kind)
	}
}
