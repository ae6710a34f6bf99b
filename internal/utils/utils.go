package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/forja/internal/models"
)

// ParseRoutineFromTOML reads a routine definition file. Exercises are still
// unresolved references at this point.
func ParseRoutineFromTOML(path string) (*models.RoutineTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var routine models.RoutineTOML
	if err := toml.Unmarshal(data, &routine); err != nil {
		return nil, err
	}

	return &routine, nil
}

func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FormatWeight drops the decimals from whole weights: 185, 187.5.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// WeightUnit labels weights in summaries. Set from the config at startup.
var WeightUnit = models.UnitLbs

// FormatLoad renders a weight with its unit, e.g. "187.5 lbs".
func FormatLoad(w float64) string {
	return FormatWeight(w) + " " + WeightUnit
}

// FormatOptionalWeight renders a nil weight as "BW".
func FormatOptionalWeight(w *float64) string {
	if w == nil {
		return "BW"
	}
	return FormatWeight(*w)
}

// FormatDuration renders a duration as 1h05m or 42m.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
