package warmup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRamp(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		base   float64
		want   []Rung
	}{
		{
			name:   "target at bar",
			target: 45, base: 45,
			want: nil,
		},
		{
			name:   "target below bar",
			target: 30, base: 45,
			want: nil,
		},
		{
			name:   "small delta only gets the empty bar",
			target: 95, base: 45,
			want: []Rung{{0, 45, 5}},
		},
		{
			name:   "delta 90 crosses the first threshold",
			target: 135, base: 45,
			want: []Rung{{0, 45, 5}, {40, 80, 5}},
		},
		{
			name:   "delta 180 stops before the 90 percent rung",
			target: 225, base: 45,
			want: []Rung{{0, 45, 5}, {40, 115, 5}, {60, 155, 3}, {80, 190, 2}},
		},
		{
			name:   "heavy target gets every rung",
			target: 315, base: 45,
			want: []Rung{{0, 45, 5}, {40, 155, 5}, {60, 205, 3}, {80, 260, 2}, {90, 290, 1}},
		},
		{
			name:   "lighter bar",
			target: 135, base: 35,
			want: []Rung{{0, 35, 5}, {40, 75, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ramp(tt.target, tt.base))
		})
	}
}

func TestRoundToIncrement(t *testing.T) {
	assert.Equal(t, 115.0, RoundToIncrement(117))
	assert.Equal(t, 155.0, RoundToIncrement(153))
	assert.Equal(t, 190.0, RoundToIncrement(189))
	// Half rounds up, never truncates.
	assert.Equal(t, 120.0, RoundToIncrement(117.5))
	assert.Equal(t, 110.0, RoundToIncrement(112.4))
}

func TestPlateBreakdown(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		base  float64
		want  []Plate
	}{
		{"two plates a side", 225, 45, []Plate{{45, 2}}},
		{"mixed plates", 185, 45, []Plate{{45, 1}, {25, 1}}},
		{"small plates", 100, 45, []Plate{{25, 1}, {2.5, 1}}},
		{"empty bar", 45, 45, nil},
		{"below bar", 20, 45, nil},
		{"every size", 220, 45, []Plate{{45, 1}, {25, 1}, {10, 1}, {5, 1}, {2.5, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlateBreakdown(tt.total, tt.base, StandardPlates))
		})
	}
}

func TestPlateBreakdown_UnsortedInput(t *testing.T) {
	plates := []float64{5, 45, 25}
	assert.Equal(t, []Plate{{45, 2}}, PlateBreakdown(225, 45, plates))
	// The caller's slice is left alone.
	assert.Equal(t, []float64{5, 45, 25}, plates)
}

func TestFormatPlates(t *testing.T) {
	assert.Equal(t, "No plates", FormatPlates(nil))
	assert.Equal(t, "2×45", FormatPlates([]Plate{{45, 2}}))
	assert.Equal(t, "1×25 + 1×2.5", FormatPlates([]Plate{{25, 1}, {2.5, 1}}))
}
