package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lab-timesheet/internal/app"
	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/utils"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Lab timesheet - log lab work in Telegram, get weekly timesheet PDFs",
	Long: `timesheet runs a Telegram bot that records daily lab activities and
compiles them into a weekly timesheet PDF. The other commands work on the
same activity store from the terminal.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(importCmd)
}

// withServices loads the config, opens the store and runs fn.
func withServices(fn func(cfg *config.Config, sm *services.ServiceManager) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sm, closeFn, err := app.OpenServices(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(cfg, sm)
}

// resolveDay parses an optional date argument against today in the
// configured timezone.
func resolveDay(cfg *config.Config, args []string) (time.Time, error) {
	today := utils.Today(time.Now(), utils.LoadLocation(cfg.Timezone))
	if len(args) == 0 {
		return today, nil
	}
	return utils.ParseDate(args[0], today)
}
