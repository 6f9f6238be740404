// Package ui provides the shopcal command line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mherran/shopcal/internal/config"
	"github.com/mherran/shopcal/internal/extcal"
	"github.com/mherran/shopcal/internal/notify"
	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	client *extcal.Client
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		client: extcal.NewClient(cfg.Calendar),
		config: cfg,
	}

	a.root = &cobra.Command{
		Use:   "shopcal",
		Short: "Scheduling calendar for a small service shop",
		Long: `Shopcal is the scheduling calendar of a small service shop.

It shows booked jobs alongside the shop's external calendar in one
grid, and lets you reschedule either by dragging blocks around.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			notifier := notify.New(a.config.Notify.WebhookURL)
			return tui.RunWithDebug(a.repo, a.client, notifier, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to shopcal-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.jobsCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.syncCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("shopcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
