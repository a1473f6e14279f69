package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/export"
	"github.com/KaramelBytes/dsreport-cli/internal/project"
)

var (
	repProject string
	repDataset string
	repFormat  string
	repOutDir  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-analyze the datasets registered with a project and save their reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repProject == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProjectByName(repProject)
		if err != nil {
			return err
		}
		var refs []*project.DatasetRef
		if repDataset != "" {
			ref, err := p.FindDataset(repDataset)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		} else {
			refs = p.SortedDatasets()
		}
		if len(refs) == 0 {
			return fmt.Errorf("project '%s' has no datasets; add one with 'dsreport add'", p.Name)
		}
		format, err := outputFormat(repFormat)
		if err != nil {
			return err
		}
		dir := repOutDir
		if dir == "" {
			dir = p.ReportsDir()
		}

		out := cmd.OutOrStdout()
		for _, ref := range refs {
			ds, err := dataset.Load(ref.Path, ref.Options())
			if err != nil {
				return fmt.Errorf("%s: %w", ref.Name, err)
			}
			art, err := export.Build(format, ref.Name, ds, ref.Target, nowFunc())
			if err != nil {
				return err
			}
			saved, err := export.FileSaver{Dir: dir}.Save(art)
			if err != nil {
				return err
			}
			p.RecordReport(ref.ID, filepath.Base(saved), art.MIMEType)
			appLog.WithDataset(ref.Name).Debugw("report saved", "file", saved)
			successf(out, "Report for %s written to %s", ref.Name, saved)
		}
		return p.Save()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repProject, "project", "p", "", "project name")
	reportCmd.Flags().StringVar(&repDataset, "dataset", "", "dataset id, id prefix or name (default all)")
	reportCmd.Flags().StringVarP(&repFormat, "format", "f", "", "report format: md | html | json (default from config)")
	reportCmd.Flags().StringVar(&repOutDir, "out-dir", "", "directory to write reports into (default the project's reports/)")
}
