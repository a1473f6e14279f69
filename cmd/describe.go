package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/view"
)

var (
	descLoad   loadFlags
	descName   string
	descTarget string
	descHead   int
	descTail   int
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Show a dataset preview, column statistics and quality checks in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, _, err := descLoad.load(path)
		if err != nil {
			return err
		}
		name := descName
		if name == "" {
			name = dataset.DisplayName(path)
		}
		opt := view.Options{Rows: descHead, Window: view.Head, Target: descTarget}
		if !cmd.Flags().Changed("head") && cfg != nil {
			opt.Rows = cfg.PreviewRows
		}
		if cmd.Flags().Changed("tail") {
			opt.Rows = descTail
			opt.Window = view.Tail
		}
		if descTarget != "" && !ds.HasColumn(descTarget) {
			warnf(cmd.ErrOrStderr(), "target column %q not found; skipping imbalance analysis", descTarget)
		}
		appLog.WithDataset(name).Debugw("describe", "rows", opt.Rows, "tail", opt.Window == view.Tail)
		return view.Render(cmd.OutOrStdout(), name, ds, opt)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	descLoad.register(describeCmd)
	describeCmd.Flags().StringVar(&descName, "name", "", "dataset display name (default derived from the file name)")
	describeCmd.Flags().StringVar(&descTarget, "target", "", "target column for class-imbalance analysis")
	describeCmd.Flags().IntVar(&descHead, "head", 5, "preview the first N rows (default from config)")
	describeCmd.Flags().IntVar(&descTail, "tail", 0, "preview the last N rows instead")
	describeCmd.MarkFlagsMutuallyExclusive("head", "tail")
}
