package roulette

import (
	"math"
	"strconv"
	"strings"
)

// RosetteOptions places the fixed two-frequency rosette. Zero fields take the
// defaults: center (250, 250), step 0.01, TMax 10.
type RosetteOptions struct {
	Center Point
	Step   float64
	TMax   float64
}

func (o RosetteOptions) withDefaults() RosetteOptions {
	if o.Center == (Point{}) {
		o.Center = Point{X: 250, Y: 250}
	}
	if o.Step <= 0 {
		o.Step = 0.01
	}
	if o.TMax <= 0 {
		o.TMax = 10
	}
	return o
}

// Rosette samples x = cx + 100cos(3t) + 50cos(2t), y = cy + 100sin(3t) + 50sin(2t)
// for t from 0 to TMax inclusive. The defaults give 1001 points.
func Rosette(opts RosetteOptions) Trace {
	opts = opts.withDefaults()
	n := int(math.Round(opts.TMax / opts.Step))
	trace := make(Trace, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) * opts.Step
		trace = append(trace, Point{
			X: opts.Center.X + 100*math.Cos(3*t) + 50*math.Cos(2*t),
			Y: opts.Center.Y + 100*math.Sin(3*t) + 50*math.Sin(2*t),
		})
	}
	return trace
}

// RosettePathData formats a trace as SVG path data: "M " followed by every
// "x,y" pair and a single space.
func RosettePathData(trace Trace) string {
	var b strings.Builder
	b.Grow(len(trace)*36 + 2)
	b.WriteString("M ")
	for _, pt := range trace {
		b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
		b.WriteByte(' ')
	}
	return b.String()
}

const (
	rosetteHeader = `<svg width="500" height="500" xmlns="http://www.w3.org/2000/svg">
        <path d="`
	rosetteFooter = `" stroke="black" fill="none" stroke-width="2"/></svg>`
)

// RosetteSVG returns the default rosette as a 500×500 SVG document with a
// black, unfilled, 2-unit stroke.
func RosetteSVG() string {
	return rosetteHeader + RosettePathData(Rosette(RosetteOptions{})) + rosetteFooter
}
