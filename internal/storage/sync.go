package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/forja/internal/utils"
)

// Tables included in a dump, in restore order.
var dumpTables = []string{"routines", "routine_slots", "completed_sessions", "set_results", "exercise_weights"}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ExportTOML writes every row of every table to a single TOML file.
// NULL columns are left out of their row.
func (s *Storage) ExportTOML(outputPath string) error {
	dump := make(map[string][]map[string]interface{})

	for _, table := range dumpTables {
		rows, err := s.DB.Query(fmt.Sprintf("SELECT * FROM %s;", table))
		if err != nil {
			return wrap("export", table, err)
		}

		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return wrap("export", table, err)
		}

		tableData := []map[string]interface{}{}
		for rows.Next() {
			values := make([]interface{}, len(cols))
			valuePtrs := make([]interface{}, len(cols))
			for i := range values {
				valuePtrs[i] = &values[i]
			}

			if err := rows.Scan(valuePtrs...); err != nil {
				rows.Close()
				return wrap("export", table, err)
			}

			rowMap := make(map[string]interface{})
			for i, col := range cols {
				switch v := values[i].(type) {
				case nil:
				case []byte:
					rowMap[col] = string(v)
				default:
					rowMap[col] = v
				}
			}
			tableData = append(tableData, rowMap)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return wrap("export", table, err)
		}

		dump[table] = tableData
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dump); err != nil {
		return fmt.Errorf("Failed to encode TOML: %w", err)
	}

	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("Failed to write export file: %w", err)
	}

	s.log.WithField("path", outputPath).Info("database exported")
	return nil
}

// DefaultExportPath is ~/.config/forja/db_dump.toml.
func DefaultExportPath() (string, error) {
	dir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db_dump.toml"), nil
}

// ImportTOML replaces the content of every table present in the dump with
// the dumped rows. Tables missing from the dump are left alone.
func (s *Storage) ImportTOML(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("Failed to read %s: %w", filePath, err)
	}

	var dump map[string][]map[string]interface{}
	if _, err := toml.Decode(string(data), &dump); err != nil {
		return fmt.Errorf("Failed to decode TOML: %w", err)
	}

	known := make(map[string]bool, len(dumpTables))
	for _, t := range dumpTables {
		known[t] = true
	}
	for table := range dump {
		if !known[table] {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrap("import", "", err)
	}
	defer tx.Rollback()

	for _, table := range dumpTables {
		rows, ok := dump[table]
		if !ok {
			continue
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return wrap("import", table, err)
		}

		for _, row := range rows {
			columns := make([]string, 0, len(row))
			for col := range row {
				if !identifier.MatchString(col) {
					return fmt.Errorf("invalid column %q in table %s", col, table)
				}
				columns = append(columns, col)
			}
			sort.Strings(columns)

			placeholders := make([]string, len(columns))
			values := make([]interface{}, len(columns))
			for i, col := range columns {
				placeholders[i] = "?"
				values[i] = row[col]
			}

			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
				table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				return wrap("import", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return wrap("import", "", err)
	}

	s.log.WithField("path", filePath).Info("database imported")
	return nil
}
