package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pmProject string
	pmClear   bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage per-project settings",
}

var projectSetTargetCmd = &cobra.Command{
	Use:   "set-target <dataset> [column]",
	Short: "Set or clear the target column of a registered dataset",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pmProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProjectByName(pmProject)
		if err != nil {
			return err
		}
		column := ""
		if !pmClear {
			if len(args) < 2 || args[1] == "" {
				return fmt.Errorf("column is required unless --clear is set")
			}
			column = args[1]
		}
		if err := p.SetTarget(args[0], column); err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		if pmClear {
			successf(cmd.OutOrStdout(), "Cleared target for %s", args[0])
		} else {
			successf(cmd.OutOrStdout(), "Set target for %s: %s", args[0], column)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectSetTargetCmd)

	projectSetTargetCmd.Flags().StringVarP(&pmProject, "project", "p", "", "project name")
	projectSetTargetCmd.Flags().BoolVar(&pmClear, "clear", false, "clear the dataset's target column")
}
