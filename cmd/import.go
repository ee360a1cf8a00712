package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <lab_activities.json>",
	Short: "Merge activities from a JSON activity file into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	snapshot, err := storage.Decode(data)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	return withServices(func(_ *config.Config, sm *services.ServiceManager) error {
		added, err := sm.Activities.Import(cmd.Context(), snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d activities from %d weeks\n",
			color.GreenString("✓"), added, len(snapshot))
		return nil
	})
}
