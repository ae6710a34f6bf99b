package storage

import (
	"context"
	"database/sql"

	"github.com/misterclayt0n/forja/internal/models"
)

func (s *Storage) LoadWeights() ([]models.WeightRecord, error) {
	rows, err := s.DB.Query(
		`SELECT exercise_id, exercise_name, weight, updated_at
		FROM exercise_weights ORDER BY exercise_name ASC`,
	)
	if err != nil {
		return nil, wrap("load weights", "", err)
	}
	defer rows.Close()

	var records []models.WeightRecord
	for rows.Next() {
		var (
			rec       models.WeightRecord
			id        sql.NullString
			updatedAt string
		)
		if err := rows.Scan(&id, &rec.ExerciseName, &rec.Weight, &updatedAt); err != nil {
			return nil, wrap("load weights", "", err)
		}
		rec.ExerciseID = id.String
		if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, wrap("load weights", rec.Key(), err)
		}
		records = append(records, rec)
	}
	return records, wrap("load weights", "", rows.Err())
}

// SaveWeights replaces the stored history with records.
func (s *Storage) SaveWeights(records []models.WeightRecord) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("save weights", "", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_weights`); err != nil {
		return wrap("save weights", "", err)
	}

	for _, rec := range records {
		var id sql.NullString
		if rec.ExerciseID != "" {
			id = sql.NullString{String: rec.ExerciseID, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO exercise_weights (key, exercise_id, exercise_name, weight, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			rec.Key(),
			id,
			rec.ExerciseName,
			rec.Weight,
			formatTime(rec.UpdatedAt),
		)
		if err != nil {
			return wrap("save weights", rec.Key(), err)
		}
	}

	return wrap("save weights", "", tx.Commit())
}
