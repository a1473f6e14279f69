package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/export"
	"github.com/KaramelBytes/dsreport-cli/internal/project"
)

var (
	abLoad    loadFlags
	abProject string
	abOutDir  string
	abTarget  string
	abFormat  string
	abJobs    int
	abQuiet   bool
)

// batchItem is one analyzed file of a batch.
type batchItem struct {
	path string
	name string
	// target actually used by the report
	target string
	opt    dataset.Options
	art    *export.Artifact
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format, err := outputFormat(abFormat)
		if err != nil {
			return err
		}
		jobs := abJobs
		if jobs <= 0 && cfg != nil {
			jobs = cfg.BatchJobs
		}
		if jobs <= 0 {
			jobs = 1
		}

		var p *project.Project
		if abProject != "" {
			pp, err := loadProjectByName(abProject)
			if err != nil {
				return err
			}
			p = pp
		}
		outDir := abOutDir
		if outDir == "" && p == nil && cfg != nil {
			outDir = cfg.OutputDir
		}

		now := nowFunc()
		items := make([]batchItem, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ds, opt, err := abLoad.load(path)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}
				name := dataset.DisplayName(path)
				target := abTarget
				if target != "" && !ds.HasColumn(target) {
					appLog.WithDataset(name).Warnw("target column not found", "target", target)
					target = ""
				}
				art, err := export.Build(format, name, ds, target, now)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}
				items[i] = batchItem{path: path, name: name, target: target, opt: opt, art: art}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		appLog.Debugw("batch analyzed", "files", len(files), "jobs", jobs)

		// Outputs are written sequentially in sorted file order.
		out := cmd.OutOrStdout()
		total := len(items)
		for i, it := range items {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(it.path))
			}
			written := false
			if outDir != "" {
				saved, err := export.FileSaver{Dir: outDir}.Save(it.art)
				if err != nil {
					return err
				}
				if !abQuiet {
					if filepath.Base(saved) != it.art.Filename {
						warnf(out, "Detected existing report, writing to %s to avoid overwrite.", filepath.Base(saved))
					}
					successf(out, "Wrote analysis to %s", saved)
				}
				written = true
			}
			if p != nil {
				saved, err := saveToProject(p, it.path, it.name, it.target, it.opt, it.art)
				if err != nil {
					return err
				}
				if !abQuiet {
					successf(out, "Added analysis to project '%s' as %s", p.Name, filepath.Base(saved))
				}
				written = true
			}
			if !written {
				if _, err := (export.WriterSaver{W: out}).Save(it.art); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths into a sorted, de-duplicated list.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abLoad.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abProject, "project", "p", "", "project name to attach reports to")
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory to write reports into")
	analyzeBatchCmd.Flags().StringVar(&abTarget, "target", "", "target column, applied to files that have it")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "report format: md | html | json (default from config)")
	analyzeBatchCmd.Flags().IntVarP(&abJobs, "jobs", "j", 0, "parallel workers (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
