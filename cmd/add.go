package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/utils"
)

var addDate string

var addCmd = &cobra.Command{
	Use:   "add <activity...>",
	Short: "Log an activity, e.g. add Ran PCR samples 3 hours",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "day to log for (yesterday, 01/05, last friday, ...); default today")
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withServices(func(cfg *config.Config, sm *services.ServiceManager) error {
		today := utils.Today(time.Now(), utils.LoadLocation(cfg.Timezone))
		day := today
		if addDate != "" {
			var err error
			day, err = utils.ParseFlexibleDate(addDate, today)
			if err != nil {
				return err
			}
		}

		hours, description := utils.ExtractHours(strings.Join(args, " "))
		if _, err := sm.Activities.AddActivity(cmd.Context(), day, description, hours); err != nil {
			return err
		}

		hoursText := "no hours"
		if hours != nil {
			hoursText = utils.HoursLabel(*hours)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s (%s)\n",
			color.GreenString("✓"), utils.DayLabel(day), description, color.CyanString(hoursText))
		return nil
	})
}
