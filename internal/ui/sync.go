package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mherran/shopcal/internal/schedule"
)

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the external calendar feed once",
		Long: `Fetch the external calendar feed for the current week and print
the events found. Useful for checking the calendar connection without
opening the planner.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.client.Connected() {
				return fmt.Errorf("external calendar not configured; run `shopcal config`")
			}

			r := schedule.ComputeRange(schedule.ViewWeek, time.Now())
			events, err := a.client.ListEvents(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("fetching calendar feed: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No external events this week.")
				return nil
			}

			colorHeader.Printf("%d external event(s) this week:\n", len(events))
			for _, ev := range events {
				colorExternal.Printf("  %s  %s–%s  %s\n",
					ev.Start.Format("Mon Jan 2"),
					ev.Start.Format("15:04"),
					ev.End.Format("15:04"),
					ev.Title,
				)
			}
			return nil
		},
	}
}
