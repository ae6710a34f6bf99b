package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
)

// AppendSession stores a finished session and its set log in one
// transaction. Appending a session id that is already stored is a no-op, so
// an interrupted finish can be replayed.
func (s *Storage) AppendSession(cs models.CompletedSession) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("append session", cs.ID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO completed_sessions (id, routine_id, routine_name, start_time, end_time, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		cs.ID,
		cs.RoutineID,
		cs.RoutineName,
		formatTime(cs.StartTime),
		formatTime(cs.EndTime),
		nullString(cs.Notes),
	)
	if err != nil {
		return wrap("append session", cs.ID, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return wrap("append session", cs.ID, err)
	}
	if inserted == 0 {
		s.log.WithField("session_id", cs.ID).Debug("session already stored")
		return wrap("append session", cs.ID, tx.Commit())
	}

	for i, r := range cs.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO set_results
			(id, session_id, position, slot_id, exercise_id, exercise_name, weight, reps, set_number, completed_at, warmup)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID,
			cs.ID,
			i,
			r.SlotID,
			r.ExerciseID,
			r.ExerciseName,
			nullFloat(r.Weight),
			r.Reps,
			r.SetNumber,
			formatTime(r.CompletedAt),
			utils.BoolToInt(r.Warmup),
		)
		if err != nil {
			return wrap("append session", cs.ID, err)
		}
	}

	return wrap("append session", cs.ID, tx.Commit())
}

// ListSessions returns every finished session, newest first.
func (s *Storage) ListSessions() ([]models.CompletedSession, error) {
	return s.querySessions("list sessions", "")
}

// ListSessionsBetween returns sessions started in [from, to), newest first.
func (s *Storage) ListSessionsBetween(from, to time.Time) ([]models.CompletedSession, error) {
	return s.querySessions("list sessions", `WHERE completed_sessions.start_time >= ? AND completed_sessions.start_time < ?`, formatTime(from), formatTime(to))
}

// GetSession returns one finished session by id.
func (s *Storage) GetSession(id string) (*models.CompletedSession, error) {
	sessions, err := s.querySessions("get session", `WHERE completed_sessions.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, wrap("get session", id, ErrNotFound)
	}
	return &sessions[0], nil
}

// DeleteAllSessions wipes the session log. Weight history is kept.
func (s *Storage) DeleteAllSessions() error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("delete sessions", "", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM set_results`); err != nil {
		return wrap("delete sessions", "", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM completed_sessions`); err != nil {
		return wrap("delete sessions", "", err)
	}
	return wrap("delete sessions", "", tx.Commit())
}

func (s *Storage) querySessions(op, where string, args ...any) ([]models.CompletedSession, error) {
	rows, err := s.DB.Query(
		`SELECT id, routine_id, routine_name, start_time, end_time, notes
		FROM completed_sessions `+where+` ORDER BY start_time DESC`,
		args...,
	)
	if err != nil {
		return nil, wrap(op, "", err)
	}
	defer rows.Close()

	var sessions []models.CompletedSession
	index := make(map[string]int)
	for rows.Next() {
		var (
			cs         models.CompletedSession
			start, end string
			notes      sql.NullString
		)
		if err := rows.Scan(&cs.ID, &cs.RoutineID, &cs.RoutineName, &start, &end, &notes); err != nil {
			return nil, wrap(op, "", err)
		}
		if cs.StartTime, err = parseTime(start); err != nil {
			return nil, wrap(op, cs.ID, err)
		}
		if cs.EndTime, err = parseTime(end); err != nil {
			return nil, wrap(op, cs.ID, err)
		}
		cs.Notes = stringPtr(notes)
		index[cs.ID] = len(sessions)
		sessions = append(sessions, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, "", err)
	}
	rows.Close()

	if len(sessions) == 0 {
		return sessions, nil
	}

	results, err := s.DB.Query(
		`SELECT r.session_id, r.id, r.slot_id, r.exercise_id, r.exercise_name, r.weight, r.reps,
			r.set_number, r.completed_at, r.warmup
		FROM set_results r
		JOIN completed_sessions ON completed_sessions.id = r.session_id
		`+where+`
		ORDER BY r.session_id, r.position ASC`,
		args...,
	)
	if err != nil {
		return nil, wrap(op, "", err)
	}
	defer results.Close()

	for results.Next() {
		var (
			sessionID   string
			r           models.SetResult
			weight      sql.NullFloat64
			completedAt string
			warmup      int
		)
		if err := results.Scan(&sessionID, &r.ID, &r.SlotID, &r.ExerciseID, &r.ExerciseName, &weight,
			&r.Reps, &r.SetNumber, &completedAt, &warmup); err != nil {
			return nil, wrap(op, sessionID, err)
		}
		if r.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, wrap(op, sessionID, err)
		}
		r.Weight = floatPtr(weight)
		r.Warmup = warmup != 0

		i, ok := index[sessionID]
		if !ok {
			continue
		}
		sessions[i].Results = append(sessions[i].Results, r)
	}
	if err := results.Err(); err != nil {
		return nil, wrap(op, "", err)
	}
	return sessions, nil
}
