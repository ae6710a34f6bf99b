package progression

import (
	"sort"
	"strings"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
)

// History maps an exercise to its next working weight. Keys are exercise
// ids; legacy records are keyed by name until the exercise is next trained.
type History map[string]models.WeightRecord

func NewHistory(records []models.WeightRecord) History {
	h := make(History, len(records))
	for _, r := range records {
		h[r.Key()] = r
	}
	return h
}

// Lookup satisfies session.WeightSource.
func (h History) Lookup(ex models.Exercise) (float64, bool) {
	if r, ok := h[ex.ID]; ok {
		return r.Weight, true
	}
	if r, ok := h[ex.Name]; ok && r.ExerciseID == "" {
		return r.Weight, true
	}
	for _, r := range h {
		if r.ExerciseID == "" && strings.EqualFold(r.ExerciseName, ex.Name) {
			return r.Weight, true
		}
	}
	return 0, false
}

// Apply records the updates and drops any legacy name key they supersede.
func (h History) Apply(updates []Update, now time.Time) {
	for _, u := range updates {
		if legacy, ok := h[u.ExerciseName]; ok && legacy.ExerciseID == "" {
			delete(h, u.ExerciseName)
		}
		h[u.ExerciseID] = models.WeightRecord{
			ExerciseID:   u.ExerciseID,
			ExerciseName: u.ExerciseName,
			Weight:       u.Weight,
			UpdatedAt:    now.UTC(),
		}
	}
}

// Pending drops updates whose exercise was already recorded at or after
// since, so replaying a finished session does not progress it twice.
func (h History) Pending(updates []Update, since time.Time) []Update {
	var out []Update
	for _, u := range updates {
		if r, ok := h[u.ExerciseID]; ok && !r.UpdatedAt.Before(since) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Records returns the history sorted by exercise name.
func (h History) Records() []models.WeightRecord {
	out := make([]models.WeightRecord, 0, len(h))
	for _, r := range h {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExerciseName != out[j].ExerciseName {
			return out[i].ExerciseName < out[j].ExerciseName
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
