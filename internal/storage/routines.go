package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
)

// UpsertRoutine validates r and replaces any stored routine with the same
// id, slots included.
func (s *Storage) UpsertRoutine(r models.Routine) error {
	if err := r.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("upsert routine", r.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO routines (id, name, category, notes, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			notes = excluded.notes,
			created_at = excluded.created_at,
			last_used_at = excluded.last_used_at`,
		r.ID,
		r.Name,
		nullString(r.Category),
		nullString(r.Notes),
		formatTime(r.CreatedAt),
		nullTime(r.LastUsedAt),
	)
	if err != nil {
		return wrap("upsert routine", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_slots WHERE routine_id = ?`, r.ID); err != nil {
		return wrap("upsert routine", r.ID, err)
	}

	for i, slot := range r.Slots {
		exercise, err := json.Marshal(slot.Exercise)
		if err != nil {
			return wrap("upsert routine", r.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO routine_slots
			(id, routine_id, position, exercise, sets, reps, weight, rest_seconds, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			slot.ID,
			r.ID,
			i,
			string(exercise),
			slot.Sets,
			slot.Reps,
			nullFloat(slot.Weight),
			slot.RestSeconds,
			nullString(slot.Notes),
		)
		if err != nil {
			return wrap("upsert routine", r.ID, err)
		}
	}

	return wrap("upsert routine", r.ID, tx.Commit())
}

// ListRoutines returns every routine, most recently used first.
func (s *Storage) ListRoutines() ([]models.Routine, error) {
	return s.queryRoutines("list routines", "", `ORDER BY COALESCE(last_used_at, created_at) DESC, name ASC`)
}

// FindRoutine returns the routine with id, or an error wrapping ErrNotFound.
func (s *Storage) FindRoutine(id string) (*models.Routine, error) {
	routines, err := s.queryRoutines("find routine", id, `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, fmt.Errorf("routine %q: %w", id, ErrNotFound)
	}
	return &routines[0], nil
}

// FindRoutineByName matches case-insensitively. With duplicates the most
// recently used wins.
func (s *Storage) FindRoutineByName(name string) (*models.Routine, error) {
	routines, err := s.queryRoutines("find routine", name,
		`WHERE lower(name) = ? ORDER BY COALESCE(last_used_at, created_at) DESC`, strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, fmt.Errorf("routine %q: %w", name, ErrNotFound)
	}
	return &routines[0], nil
}

// ResolveRoutine looks ref up as an id, then as a name.
func (s *Storage) ResolveRoutine(ref string) (*models.Routine, error) {
	r, err := s.FindRoutine(ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return r, err
	}
	return s.FindRoutineByName(ref)
}

func (s *Storage) DeleteRoutine(id string) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("delete routine", id, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return wrap("delete routine", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("routine %q: %w", id, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_slots WHERE routine_id = ?`, id); err != nil {
		return wrap("delete routine", id, err)
	}

	return wrap("delete routine", id, tx.Commit())
}

// TouchRoutine stamps the routine's last-used time.
func (s *Storage) TouchRoutine(id string, at time.Time) error {
	res, err := s.DB.Exec(`UPDATE routines SET last_used_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return wrap("touch routine", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wrap("touch routine", id, ErrNotFound)
	}
	return nil
}

func (s *Storage) queryRoutines(op, id, clause string, args ...any) ([]models.Routine, error) {
	rows, err := s.DB.Query(
		`SELECT id, name, category, notes, created_at, last_used_at FROM routines `+clause,
		args...,
	)
	if err != nil {
		return nil, wrap(op, id, err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		var (
			r                   models.Routine
			category, notes     sql.NullString
			createdAt, lastUsed sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &category, &notes, &createdAt, &lastUsed); err != nil {
			return nil, wrap(op, id, err)
		}
		r.Category = stringPtr(category)
		r.Notes = stringPtr(notes)
		if r.CreatedAt, err = parseTime(createdAt.String); err != nil {
			return nil, wrap(op, r.ID, err)
		}
		if r.LastUsedAt, err = timePtr(lastUsed); err != nil {
			return nil, wrap(op, r.ID, err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, id, err)
	}
	rows.Close()

	for i := range routines {
		slots, err := s.routineSlots(routines[i].ID)
		if err != nil {
			return nil, wrap(op, routines[i].ID, err)
		}
		routines[i].Slots = slots
	}
	return routines, nil
}

func (s *Storage) routineSlots(routineID string) ([]models.ExerciseSlot, error) {
	rows, err := s.DB.Query(
		`SELECT id, position, exercise, sets, reps, weight, rest_seconds, notes
		FROM routine_slots WHERE routine_id = ? ORDER BY position ASC`,
		routineID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.ExerciseSlot
	for rows.Next() {
		var (
			slot     models.ExerciseSlot
			exercise string
			weight   sql.NullFloat64
			notes    sql.NullString
		)
		if err := rows.Scan(&slot.ID, &slot.Order, &exercise, &slot.Sets, &slot.Reps, &weight, &slot.RestSeconds, &notes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(exercise), &slot.Exercise); err != nil {
			return nil, fmt.Errorf("decoding exercise of slot %s: %w", slot.ID, err)
		}
		slot.Weight = floatPtr(weight)
		slot.Notes = stringPtr(notes)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
