package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/utils"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate [date]",
	Short: "Write the timesheet PDF of the week containing date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "directory to write the PDF to")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withServices(func(cfg *config.Config, sm *services.ServiceManager) error {
		day, err := resolveDay(cfg, args)
		if err != nil {
			return err
		}

		sheet, err := sm.Timesheet.Generate(cmd.Context(), utils.WeekKeyOf(day))
		if err != nil {
			return err
		}

		if err := os.MkdirAll(generateOut, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		path := filepath.Join(generateOut, sheet.FileName)
		if err := os.WriteFile(path, sheet.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n\n", color.GreenString("✓ wrote"), path)
		fmt.Fprintln(out, color.HiBlackString(sheet.Summary))
		return nil
	})
}
