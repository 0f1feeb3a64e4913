package canvassurface

import (
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
)

var namedColors = map[string]color.RGBA{
	"black":     canvas.Black,
	"white":     canvas.White,
	"red":       canvas.Red,
	"green":     canvas.Green,
	"blue":      canvas.Blue,
	"orange":    canvas.Orange,
	"purple":    canvas.Purple,
	"gray":      canvas.Gray,
	"grey":      canvas.Gray,
	"steelblue": canvas.Steelblue,
	"teal":      canvas.Teal,
	"crimson":   canvas.Crimson,
	"gold":      canvas.Gold,
	"navy":      canvas.Navy,
}

// ParseColor 解析描边样式：#rgb、#rgba、#rrggbb、#rrggbbaa 或常见颜色名。
// 无法识别时返回黑色。
func ParseColor(style string) color.Color {
	s := strings.ToLower(strings.TrimSpace(style))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") && isHex(s[1:]) {
		switch len(s) - 1 {
		case 3, 4, 6, 8:
			return canvas.Hex(s)
		}
	}
	return canvas.Black
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
