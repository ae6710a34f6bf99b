// Package warmup computes warm-up ramps and per-side plate loading for a
// target working weight.
package warmup

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const (
	DefaultBarWeight = 45.0
	MetricBarWeight  = 20.0

	// Weights are rounded to the smallest total jump a pair of the
	// smallest common plates allows.
	roundingIncrement = 5.0

	// Tolerance for float division when counting plates.
	epsilon = 1e-9
)

// StandardPlates is the usual pound plate set, heaviest first.
var StandardPlates = []float64{45, 25, 10, 5, 2.5}

// MetricPlates is the kilogram counterpart of StandardPlates.
var MetricPlates = []float64{25, 20, 10, 5, 2.5, 1.25}

type Rung struct {
	Percent int // Share of the bar-to-target delta, 0 for the empty bar.
	Weight  float64
	Reps    int
}

type step struct {
	minDelta float64 // Delta above the bar must be strictly greater than this.
	percent  int
	reps     int
}

// Thresholds are on the absolute delta above the bar, not a percentage.
var steps = []step{
	{minDelta: 50, percent: 40, reps: 5},
	{minDelta: 100, percent: 60, reps: 3},
	{minDelta: 140, percent: 80, reps: 2},
	{minDelta: 180, percent: 90, reps: 1},
}

// Ramp returns the warm-up sets leading to target on a bar weighing base.
// It is empty when the target does not exceed the bar.
func Ramp(target, base float64) []Rung {
	if target <= base {
		return nil
	}

	delta := target - base
	rungs := []Rung{{Percent: 0, Weight: base, Reps: 5}}
	for _, s := range steps {
		if delta <= s.minDelta {
			break
		}
		w := base + delta*float64(s.percent)/100
		rungs = append(rungs, Rung{
			Percent: s.percent,
			Weight:  RoundToIncrement(w),
			Reps:    s.reps,
		})
	}
	return rungs
}

// RoundToIncrement rounds to the nearest 5, half away from zero.
func RoundToIncrement(w float64) float64 {
	return math.Round(w/roundingIncrement) * roundingIncrement
}

type Plate struct {
	Size  float64
	Count int // Per side.
}

// PlateBreakdown greedily decomposes the per-side load (total-base)/2 into
// plates, heaviest first. Greedy is only exact for canonical plate sets such
// as StandardPlates, where every plate is a multiple of, or combines cleanly
// into, the next larger one; arbitrary sets may leave a remainder that a
// different combination could have covered. A nil result means no plates.
func PlateBreakdown(total, base float64, plates []float64) []Plate {
	perSide := (total - base) / 2
	if perSide <= 0 {
		return nil
	}

	sizes := slices.Clone(plates)
	slices.SortFunc(sizes, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	var out []Plate
	remaining := perSide
	for _, size := range sizes {
		if size <= 0 {
			continue
		}
		count := int(math.Floor(remaining/size + epsilon))
		if count > 0 {
			out = append(out, Plate{Size: size, Count: count})
			remaining -= float64(count) * size
		}
	}
	return out
}

// FormatPlates renders a breakdown the way it is shown next to a set,
// e.g. "2×45 + 1×10".
func FormatPlates(plates []Plate) string {
	if len(plates) == 0 {
		return "No plates"
	}
	parts := make([]string, 0, len(plates))
	for _, p := range plates {
		parts = append(parts, fmt.Sprintf("%d×%s", p.Count, formatSize(p.Size)))
	}
	return strings.Join(parts, " + ")
}

func formatSize(size float64) string {
	if size == math.Trunc(size) {
		return fmt.Sprintf("%.0f", size)
	}
	return fmt.Sprintf("%g", size)
}
