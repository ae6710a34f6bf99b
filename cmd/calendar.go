package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var details bool

// calendarCmd prints the month grid. Training days are colored by the
// routine of their first session and a legend follows the grid.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days with a legend mapping colors to routines",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := utils.ToLocal(time.Now())
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, utils.Loc)
		nextMonth := firstOfMonth.AddDate(0, 1, 0)
		lastDay := nextMonth.AddDate(0, 0, -1).Day()

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessionsBetween(firstOfMonth, nextMonth)
		if err != nil {
			return fmt.Errorf("failed to get sessions: %w", err)
		}

		// Oldest first so each day is keyed by its first session.
		sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })

		sessionsByDay := make(map[int][]models.CompletedSession)
		var routines []string
		seen := make(map[string]bool)
		for _, s := range sessions {
			day := utils.ToLocal(s.StartTime).Day()
			sessionsByDay[day] = append(sessionsByDay[day], s)

			name := routineLabel(s)
			if !seen[name] {
				seen[name] = true
				routines = append(routines, name)
			}
		}

		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		routineColors := make(map[string]func(a ...any) string)
		for i, name := range routines {
			routineColors[name] = color.New(colorPalette[i%len(colorPalette)]).SprintFunc()
		}

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(centerText(header, 20))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		weekday := int(firstOfMonth.Weekday())
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		for day := 1; day <= lastDay; day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if list, ok := sessionsByDay[day]; ok {
				dayStr = routineColors[routineLabel(list[0])](dayStr + "*")
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		if len(routines) > 0 {
			fmt.Println("Legend:")
			for _, name := range routines {
				fmt.Printf("  %s: %s\n", routineColors[name]("██"), name)
			}
		}

		if details {
			fmt.Println("\nSession Details:")
			var days []int
			for d := range sessionsByDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, utils.Loc)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, s := range sessionsByDay[day] {
					fmt.Printf("  Session %s (%s) at %s - %s\n", s.ID, routineLabel(s),
						utils.ToLocal(s.StartTime).Format("15:04"), utils.ToLocal(s.EndTime).Format("15:04"))
				}
			}
		}

		return nil
	},
}

func routineLabel(s models.CompletedSession) string {
	if strings.TrimSpace(s.RoutineName) == "" {
		return "Default"
	}
	return s.RoutineName
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional session details")
}
