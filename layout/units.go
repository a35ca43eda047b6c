package layout

import (
	"strconv"
	"strings"
)

// All layout coordinates are PDF points (1/72 in). This file keeps the
// unit-safe helpers used to express physical lengths such as margins.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt, mm and cm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	CmToPt = 72.0 / 2.54
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// Points converts the length to points. Unit-less values are taken as points.
func (l Length) Points() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * CmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// String formats the length with its unit, eg. "2.5cm".
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// CM is shorthand for a centimeter length expressed in points.
func CM(v float64) float64 { return Length{Value: v, Unit: UnitCM}.Points() }

// ParseLength parses strings like "2.5cm", "80pt" or "12mm". A bare number
// is read as points. Unparseable input yields a zero Length.
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := UnitPT
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}

// LineHeight returns the line height used everywhere in an Acta: 1.5 times
// the font size.
func LineHeight(fontSize float64) float64 { return fontSize * lineHeightFactor }

const lineHeightFactor = 1.5
