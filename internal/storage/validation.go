package storage

import (
	"database/sql"
	"strings"
)

// RoutineNameExists reports whether another routine already uses name,
// ignoring case. excludeID lets an update keep its own name.
func (s *Storage) RoutineNameExists(name, excludeID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM routines WHERE lower(name) = ? AND id != ?)",
		strings.ToLower(name), excludeID,
	).Scan(&exists)

	if err != nil && err != sql.ErrNoRows {
		return false, wrap("check routine name", name, err)
	}

	return exists, nil
}
