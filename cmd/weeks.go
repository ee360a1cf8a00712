package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/utils"
)

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List logged weeks with their totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(_ *config.Config, sm *services.ServiceManager) error {
			weeks, err := sm.Activities.ListWeeks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatWeeks(weeks))
			return nil
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show the activities of the week containing date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(cfg *config.Config, sm *services.ServiceManager) error {
			day, err := resolveDay(cfg, args)
			if err != nil {
				return err
			}
			weekKey := utils.WeekKeyOf(day)
			week, err := sm.Activities.GetWeek(cmd.Context(), weekKey)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatWeek(weekKey, week))
			return nil
		})
	},
}
