package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addLoad        loadFlags
	addProjectName string
	addName        string
	addTarget      string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a dataset with a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		if addProjectName == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProjectByName(addProjectName)
		if err != nil {
			return err
		}
		if ref := p.DatasetByPath(file); ref != nil {
			return fmt.Errorf("%s is already registered as %q (%s)", file, ref.Name, ref.ID)
		}
		opt, err := addLoad.options(file)
		if err != nil {
			return err
		}
		ref, err := p.AddDataset(file, addName, addTarget, opt)
		if err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		appLog.WithDataset(ref.Name).Debugw("dataset registered", "project", p.Name, "id", ref.ID)
		successf(cmd.OutOrStdout(), "Dataset added: %s (%d rows x %d columns, id %s)", ref.Name, ref.Rows, ref.Columns, shortID(ref.ID))
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(addCmd)
	addLoad.register(addCmd)
	addCmd.Flags().StringVarP(&addProjectName, "project", "p", "", "project name")
	addCmd.Flags().StringVar(&addName, "name", "", "dataset display name (default derived from the file name)")
	addCmd.Flags().StringVar(&addTarget, "target", "", "target column for class-imbalance analysis")
}
