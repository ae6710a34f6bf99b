package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/timer"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest [seconds]",
	Short: "Run the rest timer (p pause, r resume, +N add seconds, c skip, q quit)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := sessionTracker()
		engine, err := tr.Active()
		if err != nil {
			return err
		}
		state := engine.State()

		seconds := state.Rest.Remaining
		if !state.Rest.Active || seconds <= 0 {
			seconds = state.Slots[state.CurrentSlot].Slot.RestSeconds
		}
		if len(args) == 1 {
			if seconds, err = strconv.Atoi(args[0]); err != nil || seconds <= 0 {
				return fmt.Errorf("Invalid rest time %q", args[0])
			}
		}
		if seconds <= 0 {
			return fmt.Errorf("No rest configured for %s", state.Slots[state.CurrentSlot].Slot.Exercise.Name)
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		done := make(chan struct{}, 1)
		t := timer.New(timer.RealClock(), timer.NotifierFunc(func(kind timer.Kind, remaining int) {
			switch kind {
			case timer.KindWarning:
				fmt.Printf("\a\r%s %ds left        \n", yellow("⏱"), remaining)
			case timer.KindComplete:
				fmt.Printf("\a\r%s                \n", green("Rest over, next set!"))
				select {
				case done <- struct{}{}:
				default:
				}
			}
		}), logrus.StandardLogger())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		input := make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				input <- strings.TrimSpace(scanner.Text())
			}
			close(input)
		}()

		t.Start(time.Duration(seconds) * time.Second)
		display := time.NewTicker(time.Second)
		defer display.Stop()

		save := func(rest models.RestState) error {
			if err := engine.SetRest(rest); err != nil {
				return err
			}
			return tr.Save(engine)
		}
		// Leaving early keeps the remaining time for the next 'forja rest'.
		keep := func() error {
			left := int(t.Remaining().Round(time.Second).Seconds())
			t.Cancel()
			return save(models.RestState{Active: left > 0, Remaining: left})
		}

		for {
			select {
			case <-done:
				return save(models.RestState{})
			case <-ctx.Done():
				fmt.Println()
				return keep()
			case <-display.C:
				if t.State() == timer.StateRunning {
					fmt.Printf("\r%s %s ", yellow("⏱"), utils.FormatClock(int(t.Remaining().Round(time.Second).Seconds())))
				}
			case line, ok := <-input:
				if !ok {
					input = nil
					continue
				}
				switch {
				case line == "p":
					t.Pause()
					fmt.Printf("\r%s %s\n", yellow("Paused at"), utils.FormatClock(int(t.Remaining().Seconds())))
				case line == "r":
					t.Resume()
				case line == "c":
					t.Cancel()
					fmt.Println("Rest skipped")
					return save(models.RestState{})
				case line == "q":
					return keep()
				case strings.HasPrefix(line, "+"):
					n, err := strconv.Atoi(strings.TrimPrefix(line, "+"))
					if err != nil || n <= 0 {
						fmt.Println("Use +N to add N seconds")
						continue
					}
					t.Extend(time.Duration(n) * time.Second)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(restCmd)
}
