package scene

import (
	"math"
	"testing"
)

// TestParseQuantityUnits 覆盖各单位后缀的解析。
func TestParseQuantityUnits(t *testing.T) {
	cases := map[string]Quantity{
		"12":       {12, UnitNone},
		" 12.5px ": {12.5, UnitPX},
		"30%":      {30, UnitPercent},
		"15deg":    {15, UnitDeg},
		"-0.5rad":  {-0.5, UnitRad},
		"0.25TURN": {0.25, UnitTurn},
	}
	for in, want := range cases {
		got, err := ParseQuantity(in)
		if err != nil || got != want {
			t.Fatalf("ParseQuantity(%q) = %+v, %v；期望 %+v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "12em", "NaN", "deg"} {
		if _, err := ParseQuantity(in); err == nil {
			t.Fatalf("ParseQuantity(%q) 应返回错误", in)
		}
	}
}

// TestQuantityLength 验证百分比相对参考尺寸换算，角度不能作为长度。
func TestQuantityLength(t *testing.T) {
	if got, _ := (Quantity{30, UnitPercent}).Length(400); got != 120 {
		t.Fatalf("30%% of 400 期望 120，实际 %g", got)
	}
	if got, _ := (Quantity{7, UnitPX}).Length(400); got != 7 {
		t.Fatalf("7px 期望 7，实际 %g", got)
	}
	if _, err := (Quantity{7, UnitDeg}).Length(400); err == nil {
		t.Fatalf("角度不应能作为长度")
	}
}

// TestQuantityRadians 验证角度换算：裸数字按角度处理。
func TestQuantityRadians(t *testing.T) {
	cases := []struct {
		q    Quantity
		want float64
	}{
		{Quantity{90, UnitNone}, math.Pi / 2},
		{Quantity{180, UnitDeg}, math.Pi},
		{Quantity{1.5, UnitRad}, 1.5},
		{Quantity{0.5, UnitTurn}, math.Pi},
	}
	for _, tc := range cases {
		got, err := tc.q.Radians()
		if err != nil || math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("%s 换算为弧度 = %g, %v；期望 %g", tc.q, got, err, tc.want)
		}
	}
	if _, err := (Quantity{10, UnitPercent}).Radians(); err == nil {
		t.Fatalf("百分比不应能作为角度")
	}
}

func TestQuantityCount(t *testing.T) {
	if n, err := (Quantity{360, UnitNone}).Count(); err != nil || n != 360 {
		t.Fatalf("360 期望 360，实际 %d %v", n, err)
	}
	for _, q := range []Quantity{{0, UnitNone}, {1.5, UnitNone}, {10, UnitPX}} {
		if _, err := q.Count(); err == nil {
			t.Fatalf("%s 不应是合法采样数", q)
		}
	}
}
