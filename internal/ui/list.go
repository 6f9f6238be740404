package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mherran/shopcal/internal/schedule"
)

func (a *App) jobsCmd() *cobra.Command {
	var (
		view   string
		onDate string
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs in a calendar range",
		Long: `List jobs scheduled within a calendar range.

The range is a day, week, month, or year anchored at --date (today by
default). Weeks start on Sunday.`,
		Example: `  shopcal jobs
  shopcal jobs --view=week
  shopcal jobs --view=month --date=2026-03-01`,
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := schedule.ParseView(view)
			if err != nil {
				return err
			}

			anchor := time.Now()
			if onDate != "" {
				anchor, err = time.ParseInLocation("2006-01-02", onDate, time.Local)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}

			r := schedule.ComputeRange(v, anchor)
			jobs, err := a.repo.ListJobs(context.Background(), r)
			if err != nil {
				return fmt.Errorf("listing jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs in this range.")
				return nil
			}

			var currentDay string
			for _, j := range jobs {
				iv := j.DisplayInterval()
				day := schedule.DayKey(iv.Start)
				if day != currentDay {
					if currentDay != "" {
						fmt.Println()
					}
					colorHeader.Printf("=== %s ===\n", iv.Start.Format("Mon, Jan 2 2006"))
					currentDay = day
				}

				line := fmt.Sprintf("  %s #%d %s–%s %s",
					statusSymbol(j.Status),
					j.ID,
					iv.Start.Format("15:04"),
					iv.End.Format("15:04"),
					j.CustomerName,
				)
				if j.ServiceName != "" {
					line += " · " + j.ServiceName
				}
				colorJob.Println(line)
				if j.Address != "" {
					colorMuted.Printf("      %s\n", j.Address)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "day", "Range: day, week, month, or year")
	cmd.Flags().StringVar(&onDate, "date", "", "Anchor date (YYYY-MM-DD, defaults to today)")

	return cmd
}

func (a *App) addCmd() *cobra.Command {
	var (
		customer string
		service  string
		duration int
		at       string
		address  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a new job",
		Example: `  shopcal add --customer="Ana Torres" --service="Oil change" --duration=60 --at="2026-03-18 09:00"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			when, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --at: %w", err)
			}

			j := &schedule.Job{
				CustomerName:    customer,
				ServiceName:     service,
				DurationMinutes: duration,
				ScheduledAt:     when,
				Status:          schedule.StatusScheduled,
				Address:         address,
				CreatedAt:       time.Now(),
			}
			if err := a.repo.CreateJob(context.Background(), j); err != nil {
				return fmt.Errorf("creating job: %w", err)
			}

			fmt.Printf("Booked #%d: %s at %s\n", j.ID, customer, when.Format("Mon, Jan 2 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name (required)")
	cmd.Flags().StringVar(&service, "service", "", "Service name")
	cmd.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	cmd.Flags().StringVar(&at, "at", "", "Scheduled time (YYYY-MM-DD HH:MM, required)")
	cmd.Flags().StringVar(&address, "address", "", "Service address")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func statusSymbol(s schedule.Status) string {
	switch s {
	case schedule.StatusScheduled:
		return "○"
	case schedule.StatusEnRoute:
		return "→"
	case schedule.StatusInProgress:
		return "●"
	case schedule.StatusDone:
		return "✓"
	case schedule.StatusCancelled:
		return "✗"
	case schedule.StatusNoShow:
		return "!"
	default:
		return "?"
	}
}
