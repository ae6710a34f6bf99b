package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/spf13/cobra"
)

var dateStr string

var lookSessionCmd = &cobra.Command{
	Use:   "look-session [session-id]",
	Short: "Display detailed information for a training session by its ID, or by date using --date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if dateStr == "" && len(args) == 0 {
			return fmt.Errorf("Please provide a session ID or use --date DD/MM/YY")
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		if dateStr != "" {
			day, err := parseDay(dateStr)
			if err != nil {
				return err
			}
			sessions, err := st.ListSessionsBetween(day, day.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("Failed to retrieve sessions for date %s: %w", day.Format("2006-01-02"), err)
			}
			if len(sessions) == 0 {
				fmt.Println(magenta("No sessions found on that date."))
				return nil
			}

			fmt.Println(boldGreen("Training Sessions on:"), yellow(day.Format("2006-01-02")))
			fmt.Println(strings.Repeat("=", 50))
			for i, s := range sessions {
				fmt.Printf("\n%s %d. %s\n", boldGreen("Session"), i+1, s.ID)
				printCompletedSession(s)
			}
			return nil
		}

		s, err := st.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("Failed to load session: %w", err)
		}
		fmt.Printf("%s %s\n", boldGreen("Session"), s.ID)
		printCompletedSession(*s)
		return nil
	},
}

func printCompletedSession(s models.CompletedSession) {
	cyan := color.New(color.FgCyan).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("   %s: %s\n", cyan("Routine"), routineLabel(s))
	fmt.Printf("   %s: %s\n", cyan("Start Time"), utils.ToLocal(s.StartTime).Format(time.RFC1123))
	fmt.Printf("   %s: %s\n", blue("End Time"), utils.ToLocal(s.EndTime).Format(time.RFC1123))
	fmt.Printf("   %s: %s\n", red("Duration"), utils.FormatDuration(s.Duration()))
	fmt.Printf("   %s: %s\n", yellow("Volume"), utils.FormatLoad(s.Volume()))
	if s.Notes != nil {
		fmt.Printf("   %s: %s\n", cyan("Notes"), *s.Notes)
	}

	if len(s.Results) == 0 {
		fmt.Println("   No sets logged")
		return
	}

	table := newBoxTable(24, 6, 16, 10)
	table.printHeader("Exercise", "Set", "Performed", "1RM")
	for _, r := range s.Results {
		set := fmt.Sprint(r.SetNumber)
		if r.Warmup {
			set += "W"
		}
		performed := fmt.Sprintf("%d reps", r.Reps)
		estimate := ""
		if r.Weight != nil {
			performed = fmt.Sprintf("%s × %d", utils.FormatWeight(*r.Weight), r.Reps)
			if !r.Warmup && r.Reps > 0 {
				estimate = fmt.Sprintf("%.1f", utils.CalculateEpley1RM(*r.Weight, r.Reps))
			}
		}
		table.printRow(r.ExerciseName, set, performed, estimate)
	}
	table.printFooter()
}

func init() {
	lookSessionCmd.Flags().StringVarP(&dateStr, "date", "d", "", "Date of sessions (DD/MM/YY or YYYY-MM-DD)")
	rootCmd.AddCommand(lookSessionCmd)
}
