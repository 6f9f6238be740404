package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mherran/shopcal/internal/config"
	"github.com/mherran/shopcal/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  shopcal config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.DayStartHour = promptInt(reader, "Day start hour", cfg.Schedule.DayStartHour)
	cfg.Schedule.DayEndHour = promptInt(reader, "Day end hour", cfg.Schedule.DayEndHour)
	cfg.Schedule.SlotMinutes = promptInt(reader, "Slot minutes (15/30/60)", cfg.Schedule.SlotMinutes)
	cfg.Calendar.FeedURL = promptValue(reader, "Calendar feed URL (empty to disconnect)", cfg.Calendar.FeedURL)
	cfg.Calendar.SyncURL = promptValue(reader, "Calendar sync URL", cfg.Calendar.SyncURL)
	cfg.Calendar.Token = promptValue(reader, "Calendar token", cfg.Calendar.Token)
	cfg.Calendar.SyncSchedule = promptValue(reader, "Sync schedule (cron)", cfg.Calendar.SyncSchedule)
	cfg.Notify.WebhookURL = promptValue(reader, "Notification webhook URL", cfg.Notify.WebhookURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  day_start_hour = %d\n", cfg.Schedule.DayStartHour)
	fmt.Printf("  day_end_hour   = %d\n", cfg.Schedule.DayEndHour)
	fmt.Printf("  slot_minutes   = %d\n", cfg.Schedule.SlotMinutes)
	fmt.Println("\n[calendar]")
	if cfg.CalendarConnected() {
		fmt.Printf("  feed_url       = %s\n", cfg.Calendar.FeedURL)
		fmt.Printf("  sync_url       = %s\n", cfg.Calendar.SyncURL)
		fmt.Printf("  sync_schedule  = %s\n", cfg.Calendar.SyncSchedule)
		fmt.Println("  token          = (set)")
	} else {
		fmt.Println("  (not connected)")
	}
	fmt.Println("\n[notify]")
	if cfg.Notify.WebhookURL != "" {
		fmt.Printf("  webhook_url    = %s\n", cfg.Notify.WebhookURL)
	} else {
		fmt.Println("  (disabled)")
	}
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme          = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Printf("  Not a number: %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
