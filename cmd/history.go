package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterRoutine string
	filterDay     string
	historyLimit  int
)

// historyCmd shows session history grouped by routine and day.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display session history, optionally filtered by routine and/or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		var sessions []models.CompletedSession
		if filterDay != "" {
			day, err := parseDay(filterDay)
			if err != nil {
				return err
			}
			sessions, err = st.ListSessionsBetween(day, day.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("failed to retrieve sessions: %w", err)
			}
		} else {
			sessions, err = st.ListSessions()
			if err != nil {
				return fmt.Errorf("failed to retrieve sessions: %w", err)
			}
		}

		if filterRoutine != "" {
			var filtered []models.CompletedSession
			for _, s := range sessions {
				if strings.EqualFold(s.RoutineName, filterRoutine) || s.RoutineID == filterRoutine {
					filtered = append(filtered, s)
				}
			}
			sessions = filtered
		}

		// Sessions come newest first.
		if historyLimit > 0 && len(sessions) > historyLimit {
			sessions = sessions[:historyLimit]
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found")
			return nil
		}

		grouped := make(map[string]map[string][]models.CompletedSession)
		for _, s := range sessions {
			name := routineLabel(s)
			if _, ok := grouped[name]; !ok {
				grouped[name] = make(map[string][]models.CompletedSession)
			}
			day := utils.ToLocal(s.StartTime).Format("2006-01-02")
			grouped[name][day] = append(grouped[name][day], s)
		}

		var routineKeys []string
		for r := range grouped {
			routineKeys = append(routineKeys, r)
		}
		sort.Strings(routineKeys)
		for _, name := range routineKeys {
			fmt.Printf("Routine: %s\n", name)
			var days []string
			for d := range grouped[name] {
				days = append(days, d)
			}
			sort.Strings(days)
			for _, d := range days {
				fmt.Printf("  Date: %s\n", d)
				list := grouped[name][d]
				sort.Slice(list, func(i, j int) bool {
					return list[i].StartTime.Before(list[j].StartTime)
				})
				for _, s := range list {
					fmt.Printf("    Session %s | Start: %s | Duration: %s | Sets: %d | Volume: %s\n",
						s.ID,
						utils.ToLocal(s.StartTime).Format("15:04"),
						utils.FormatDuration(s.Duration()),
						s.WorkingSetCount(),
						utils.FormatWeight(s.Volume()),
					)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

// parseDay accepts 2025-02-07 or 07/02/25 and returns local midnight.
func parseDay(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/06"} {
		if t, err := time.ParseInLocation(layout, s, utils.Loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse day %q (use YYYY-MM-DD or DD/MM/YY)", s)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterRoutine, "routine", "r", "", "Filter by routine name or id (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many recent sessions")
}
