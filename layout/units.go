package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and conversions for physical lengths.
// Points are the canonical unit everywhere inside the layout engine.

// Unit represents the unit a length value was authored in.
type Unit int

const (
	UnitPT Unit = iota // typesetting points, 1/72 inch
	UnitIN             // inches
	UnitCM             // centimeters
)

// Conversion constants between points, inches and centimeters.
const (
	PtPerIn = 72.0
	CmPerIn = 2.54
	PtPerCm = PtPerIn / CmPerIn
)

// ErrInvalidMeasurement reports a dimension that is not a positive, finite
// number.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// UnitToString returns the short suffix for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitIN:
		return "in"
	case UnitCM:
		return "cm"
	default:
		return ""
	}
}

// Length preserves a numeric value together with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Points constructs a Length in typesetting points.
func Points(v float64) Length { return Length{Value: v, Unit: UnitPT} }

// Inches constructs a Length in inches.
func Inches(v float64) Length { return Length{Value: v, Unit: UnitIN} }

// Centimeters constructs a Length in centimeters.
func Centimeters(v float64) Length { return Length{Value: v, Unit: UnitCM} }

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	pt := l.toPoints()
	switch target {
	case UnitPT:
		return pt
	case UnitIN:
		return pt / PtPerIn
	case UnitCM:
		return pt / PtPerCm
	default:
		return pt
	}
}

func (l Length) toPoints() float64 {
	switch l.Unit {
	case UnitIN:
		return l.Value * PtPerIn
	case UnitCM:
		return l.Value * PtPerCm
	default:
		return l.Value
	}
}

func (l Length) ToPT() float64 { return l.To(UnitPT) }
func (l Length) ToIN() float64 { return l.To(UnitIN) }
func (l Length) ToCM() float64 { return l.To(UnitCM) }

// Check validates that the length is a positive, finite dimension.
func (l Length) Check() error {
	if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
		return fmt.Errorf("%w: %v%s is not finite", ErrInvalidMeasurement, l.Value, UnitToString(l.Unit))
	}
	if l.Value <= 0 {
		return fmt.Errorf("%w: %v%s is not positive", ErrInvalidMeasurement, l.Value, UnitToString(l.Unit))
	}
	return nil
}

// Convert converts a dimension between units, rejecting non-positive or
// non-finite input.
func Convert(value float64, from, to Unit) (float64, error) {
	l := Length{Value: value, Unit: from}
	if err := l.Check(); err != nil {
		return 0, err
	}
	return l.To(to), nil
}

// ParseLength parses a length string such as "2.5in", "6.35cm" or "9pt".
// A bare number is read as points.
func ParseLength(value string) (Length, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}, fmt.Errorf("%w: empty length", ErrInvalidMeasurement)
	}
	unit := UnitPT
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"pt", UnitPT}, {"in", UnitIN}, {"cm", UnitCM}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidMeasurement, value)
	}
	return Length{Value: f, Unit: unit}, nil
}
