// Package calc holds the shop-floor unit conversions.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned for a unit symbol outside the requested quantity.
var ErrUnknownUnit = errors.New("unknown unit")

// Quantity groups units that can be converted into each other.
type Quantity int

const (
	Length Quantity = iota
	Area
	Weight
	Temperature
	Angle
)

func (q Quantity) String() string {
	switch q {
	case Area:
		return "Area"
	case Weight:
		return "Weight"
	case Temperature:
		return "Temperature"
	case Angle:
		return "Angle"
	default:
		return "Length"
	}
}

// Quantities lists every quantity in UI order.
func Quantities() []Quantity {
	return []Quantity{Length, Area, Weight, Temperature, Angle}
}

// Linear quantities are stored as the factor to the base unit
// (mm, mm², g, rad).
var linearUnits = map[Quantity][]struct {
	symbol string
	factor float64
}{
	Length: {
		{"mm", 1},
		{"cm", 10},
		{"m", 1000},
		{"in", 25.4},
		{"ft", 304.8},
		{"yd", 914.4},
	},
	Area: {
		{"mm2", 1},
		{"cm2", 100},
		{"m2", 1e6},
		{"in2", 645.16},
		{"ft2", 92903.04},
		{"yd2", 836127.36},
	},
	Weight: {
		{"g", 1},
		{"kg", 1000},
		{"t", 1e6},
		{"oz", 28.3495},
		{"lb", 453.592},
	},
	Angle: {
		{"rad", 1},
		{"deg", math.Pi / 180},
	},
}

var temperatureUnits = []string{"C", "F", "K"}

// Units returns the unit symbols of q in UI order.
func Units(q Quantity) []string {
	if q == Temperature {
		return append([]string{}, temperatureUnits...)
	}
	var out []string
	for _, u := range linearUnits[q] {
		out = append(out, u.symbol)
	}
	return out
}

func factor(q Quantity, unit string) (float64, error) {
	for _, u := range linearUnits[q] {
		if u.symbol == unit {
			return u.factor, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, unit, strings.ToLower(q.String()))
}

// Convert converts v of quantity q from one unit to another.
func Convert(q Quantity, v float64, from, to string) (float64, error) {
	if q == Temperature {
		return ConvertTemperature(v, from, to)
	}
	ff, err := factor(q, from)
	if err != nil {
		return 0, err
	}
	tf, err := factor(q, to)
	if err != nil {
		return 0, err
	}
	return v * ff / tf, nil
}

// ConvertLength converts between mm, cm, m, in, ft and yd.
func ConvertLength(v float64, from, to string) (float64, error) {
	return Convert(Length, v, from, to)
}

// ConvertArea converts between mm2, cm2, m2, in2, ft2 and yd2.
func ConvertArea(v float64, from, to string) (float64, error) {
	return Convert(Area, v, from, to)
}

// ConvertWeight converts between g, kg, t, oz and lb.
func ConvertWeight(v float64, from, to string) (float64, error) {
	return Convert(Weight, v, from, to)
}

// ConvertTemperature converts between C, F and K.
func ConvertTemperature(v float64, from, to string) (float64, error) {
	var c float64
	switch from {
	case "C":
		c = v
	case "F":
		c = (v - 32) * 5 / 9
	case "K":
		c = v - 273.15
	default:
		return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, from)
	}
	switch to {
	case "C":
		return c, nil
	case "F":
		return c*9/5 + 32, nil
	case "K":
		return c + 273.15, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, to)
	}
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// QuantityForUnit finds the quantity a unit symbol belongs to.
func QuantityForUnit(unit string) (Quantity, error) {
	for _, q := range Quantities() {
		for _, u := range Units(q) {
			if u == unit {
				return q, nil
			}
		}
	}
	return Length, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
}
