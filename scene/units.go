package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-aware quantities used by .spiro values.

// Unit is the suffix a number was written with.
type Unit int

const (
	UnitNone    Unit = iota // bare number
	UnitPX                  // surface units
	UnitPercent             // percent of min(width, height)
	UnitDeg                 // degrees
	UnitRad                 // radians
	UnitTurn                // full turns
)

var unitSuffixes = []struct {
	s string
	u Unit
}{
	{"px", UnitPX},
	{"%", UnitPercent},
	{"deg", UnitDeg},
	{"rad", UnitRad},
	{"turn", UnitTurn},
}

// UnitToString returns the suffix for u.
func UnitToString(u Unit) string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Quantity keeps a number together with the unit it was written in.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + UnitToString(q.Unit)
}

// ParseQuantity parses "12", "12.5px", "30%", "15deg", "0.5rad" or "0.25turn".
func ParseQuantity(value string) (Quantity, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Quantity{}, fmt.Errorf("数值为空")
	}
	unit := UnitNone
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Quantity{}, fmt.Errorf("无法解析数值 %q", value)
	}
	return Quantity{Value: f, Unit: unit}, nil
}

// Length resolves q to surface units; percentages are taken of reference.
func (q Quantity) Length(reference float64) (float64, error) {
	switch q.Unit {
	case UnitNone, UnitPX:
		return q.Value, nil
	case UnitPercent:
		return reference * q.Value / 100, nil
	default:
		return 0, fmt.Errorf("%s 不是长度", q)
	}
}

// Radians resolves an angle. Bare numbers are degrees.
func (q Quantity) Radians() (float64, error) {
	switch q.Unit {
	case UnitNone, UnitDeg:
		return q.Value * math.Pi / 180, nil
	case UnitRad:
		return q.Value, nil
	case UnitTurn:
		return q.Value * 2 * math.Pi, nil
	default:
		return 0, fmt.Errorf("%s 不是角度", q)
	}
}

// Count resolves a positive integer such as a sample density.
func (q Quantity) Count() (int, error) {
	if q.Unit != UnitNone || q.Value != math.Trunc(q.Value) || q.Value < 1 {
		return 0, fmt.Errorf("%s 不是正整数", q)
	}
	return int(q.Value), nil
}
