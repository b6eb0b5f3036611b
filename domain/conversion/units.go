// Package conversion implements the unit converter of the synthesis tools.
package conversion

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	pkgerrors "etherlink/pkg/errors"
)

type rule func(v float64) float64

func factor(f float64) rule { return func(v float64) float64 { return v * f } }

// table holds the supported conversions keyed by source then target unit.
// Units within a dimension convert to each other; nothing crosses dimensions.
var table = map[string]map[string]rule{
	"m":  {"km": factor(0.001), "cm": factor(100), "mm": factor(1000), "mi": factor(0.000621371), "yd": factor(1.09361), "ft": factor(3.28084), "in": factor(39.3701)},
	"km": {"m": factor(1000), "cm": factor(100000), "mm": factor(1000000), "mi": factor(0.621371), "yd": factor(1093.61), "ft": factor(3280.84), "in": factor(39370.1)},
	"kg": {"g": factor(1000), "mg": factor(1000000), "lb": factor(2.20462), "oz": factor(35.274)},
	"g":  {"kg": factor(0.001), "mg": factor(1000), "lb": factor(0.00220462), "oz": factor(0.035274)},
	"c": {
		"f": func(v float64) float64 { return v*9/5 + 32 },
		"k": func(v float64) float64 { return v + 273.15 },
	},
	"f": {
		"c": func(v float64) float64 { return (v - 32) * 5 / 9 },
		"k": func(v float64) float64 { return (v-32)*5/9 + 273.15 },
	},
}

// Convert converts value between two units. NaN, infinite inputs and
// results that overflow are rejected with INVALID_INPUT.
func Convert(value float64, from, to string) (float64, error) {
	if !finite(value) {
		return 0, pkgerrors.NewValidationError(pkgerrors.RuleInvalidInput, "value must be a finite number")
	}
	if from == to {
		if _, ok := table[from]; ok {
			return value, nil
		}
	}
	conv, ok := table[from][to]
	if !ok {
		return 0, pkgerrors.NewValidationError(pkgerrors.RuleUnsupportedConversion,
			fmt.Sprintf("cannot convert %s to %s", from, to))
	}
	result := conv(value)
	if !finite(result) {
		return 0, pkgerrors.NewValidationError(pkgerrors.RuleInvalidInput,
			fmt.Sprintf("%g %s is out of range in %s", value, from, to))
	}
	return result, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Format renders a converted value with four decimals
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Units returns the source units in sorted order
func Units() []string {
	units := make([]string, 0, len(table))
	for u := range table {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Targets returns the units reachable from from, sorted
func Targets(from string) []string {
	targets := make([]string, 0, len(table[from]))
	for u := range table[from] {
		targets = append(targets, u)
	}
	sort.Strings(targets)
	return targets
}
