// Package stats derives history figures from finished sessions. Nothing
// here is persisted; every figure is recomputed from the session log.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
)

// ExerciseLookup resolves an exercise id to its catalog entry.
type ExerciseLookup interface {
	Get(id string) (models.Exercise, error)
}

type PersonalBest struct {
	ExerciseID   string
	ExerciseName string
	Weight       float64
	Reps         int
	EstimatedMax float64 // Epley.
	Date         time.Time
}

type Summary struct {
	WorkoutCount     int
	TotalDuration    time.Duration
	WorkoutsThisWeek int // Sessions started in the last 7 days.
	CurrentStreak    int // Consecutive training days ending today.
	WeekStreak       int // Consecutive ISO weeks ending this week.
	TotalVolume      float64
	SetsPerMuscle    map[string]int // Working sets this ISO week by primary muscle.
	PersonalBests    []PersonalBest
}

// Summarize computes every figure over sessions. exercises may be nil, in
// which case SetsPerMuscle stays empty.
func Summarize(sessions []models.CompletedSession, now time.Time, loc *time.Location, exercises ExerciseLookup) Summary {
	s := Summary{
		WorkoutCount:  len(sessions),
		SetsPerMuscle: make(map[string]int),
	}

	weekAgo := now.AddDate(0, 0, -7)
	year, week := now.In(loc).ISOWeek()
	for _, cs := range sessions {
		s.TotalDuration += cs.Duration()
		s.TotalVolume += cs.Volume()
		if !cs.StartTime.Before(weekAgo) {
			s.WorkoutsThisWeek++
		}

		y, w := cs.StartTime.In(loc).ISOWeek()
		if exercises == nil || y != year || w != week {
			continue
		}
		for _, r := range cs.Results {
			if r.Warmup {
				continue
			}
			ex, err := exercises.Get(r.ExerciseID)
			if err != nil {
				continue
			}
			for _, m := range ex.PrimaryMuscles {
				s.SetsPerMuscle[m]++
			}
		}
	}

	s.CurrentStreak = CurrentStreak(sessions, now, loc)
	s.WeekStreak = WeekStreak(sessions, now, loc)
	s.PersonalBests = PersonalBests(sessions)
	return s
}

// CurrentStreak counts consecutive calendar days, ending today, with at
// least one session. Several sessions on one day count once.
func CurrentStreak(sessions []models.CompletedSession, now time.Time, loc *time.Location) int {
	starts := make([]time.Time, 0, len(sessions))
	for _, cs := range sessions {
		starts = append(starts, cs.StartTime)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].After(starts[j]) })

	streak := 0
	cursor := utils.StartOfDay(now, loc)
	for _, start := range starts {
		day := utils.StartOfDay(start, loc)
		switch {
		case day.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		case day.Before(cursor):
			return streak
		}
	}
	return streak
}

// WeekStreak counts consecutive ISO weeks, ending with the current one,
// that have at least one session.
func WeekStreak(sessions []models.CompletedSession, now time.Time, loc *time.Location) int {
	type isoWeek struct{ year, week int }
	weeks := make(map[isoWeek]bool)
	for _, cs := range sessions {
		y, w := cs.StartTime.In(loc).ISOWeek()
		weeks[isoWeek{y, w}] = true
	}

	streak := 0
	cursor := now.In(loc)
	for {
		y, w := cursor.ISOWeek()
		if !weeks[isoWeek{y, w}] {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
}

// PersonalBests returns the best estimated one-rep max per exercise,
// heaviest first.
func PersonalBests(sessions []models.CompletedSession) []PersonalBest {
	best := make(map[string]PersonalBest)
	for _, cs := range sessions {
		for _, r := range cs.Results {
			if r.Warmup || r.Weight == nil || r.Reps <= 0 {
				continue
			}
			est := utils.CalculateEpley1RM(*r.Weight, r.Reps)
			if cur, ok := best[r.ExerciseID]; ok && cur.EstimatedMax >= est {
				continue
			}
			best[r.ExerciseID] = PersonalBest{
				ExerciseID:   r.ExerciseID,
				ExerciseName: r.ExerciseName,
				Weight:       *r.Weight,
				Reps:         r.Reps,
				EstimatedMax: est,
				Date:         r.CompletedAt,
			}
		}
	}

	out := make([]PersonalBest, 0, len(best))
	for _, pb := range best {
		out = append(out, pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EstimatedMax != out[j].EstimatedMax {
			return out[i].EstimatedMax > out[j].EstimatedMax
		}
		return out[i].ExerciseName < out[j].ExerciseName
	})
	return out
}

// NextInRotation names the routine to train next: the entry after the one
// trained most recently, or the first entry when none was trained yet.
// Names match case-insensitively. It returns "" for an empty rotation.
func NextInRotation(sessions []models.CompletedSession, rotation []string) string {
	if len(rotation) == 0 {
		return ""
	}

	last, lastAt := -1, time.Time{}
	for _, s := range sessions {
		for i, name := range rotation {
			if strings.EqualFold(s.RoutineName, name) && (last < 0 || s.StartTime.After(lastAt)) {
				last, lastAt = i, s.StartTime
				break
			}
		}
	}
	return rotation[(last+1)%len(rotation)]
}
