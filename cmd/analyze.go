package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dsreport-cli/internal/config"
	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/export"
	"github.com/KaramelBytes/dsreport-cli/internal/project"
)

// loadFlags are the ingestion flags shared by commands that read a dataset file.
type loadFlags struct {
	delimiter  string
	strict     bool
	sheetName  string
	sheetIndex int
}

func (f *loadFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "field delimiter: ',' | ';' | '|' | 'tab' (default from config; .tsv files use tab)")
	c.Flags().BoolVar(&f.strict, "strict", false, "reject data lines whose field count differs from the header")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	c.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// options resolves the ingestion options for path. An explicit --delimiter
// wins; otherwise .tsv files are sniffed and everything else uses the
// configured delimiter.
func (f loadFlags) options(path string) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.Strict = f.strict
	opt.SheetName = f.sheetName
	if f.sheetIndex > 0 {
		opt.SheetIndex = f.sheetIndex
	}
	switch {
	case f.delimiter != "":
		d, err := cfgpkg.ParseDelimiter(f.delimiter)
		if err != nil {
			return opt, err
		}
		opt.Delimiter = d
	case strings.EqualFold(filepath.Ext(path), ".tsv"):
		opt.Delimiter = 0
	case cfg != nil:
		d, err := cfgpkg.ParseDelimiter(cfg.Delimiter)
		if err != nil {
			return opt, err
		}
		opt.Delimiter = d
	}
	return opt, nil
}

func (f loadFlags) load(path string) (*dataset.Dataset, dataset.Options, error) {
	opt, err := f.options(path)
	if err != nil {
		return nil, opt, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, opt, err
	}
	return ds, opt, nil
}

// outputFormat resolves --format against the configured default.
func outputFormat(flag string) (export.Format, error) {
	if flag == "" && cfg != nil {
		flag = cfg.DefaultFormat
	}
	return export.ParseFormat(flag)
}

var (
	anaLoad       loadFlags
	anaProject    string
	anaOutputPath string
	anaOutDir     string
	anaName       string
	anaTarget     string
	anaFormat     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV/TSV/XLSX dataset and write its analysis report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, opt, err := anaLoad.load(path)
		if err != nil {
			return err
		}
		name := anaName
		if name == "" {
			name = dataset.DisplayName(path)
		}
		log := appLog.WithDataset(name)
		shape := ds.Shape()
		log.Debugw("dataset loaded", "path", path, "rows", shape.Rows, "columns", shape.Columns)
		regTarget := anaTarget
		if anaTarget != "" && !ds.HasColumn(anaTarget) {
			warnf(cmd.ErrOrStderr(), "target column %q not found; skipping imbalance analysis", anaTarget)
			regTarget = ""
		}

		format, err := outputFormat(anaFormat)
		if err != nil {
			return err
		}
		art, err := export.Build(format, name, ds, regTarget, nowFunc())
		if err != nil {
			return err
		}

		// Decide where to write: --output path, --out-dir, project, or stdout
		out := cmd.OutOrStdout()
		written := false
		outDir := anaOutDir
		if outDir == "" && anaOutputPath == "" && anaProject == "" && cfg != nil {
			outDir = cfg.OutputDir
		}
		if anaOutputPath != "" {
			p, err := export.PathSaver{Path: anaOutputPath}.Save(art)
			if err != nil {
				return err
			}
			successf(out, "Wrote analysis to %s", p)
			written = true
		}
		if outDir != "" {
			p, err := export.FileSaver{Dir: outDir}.Save(art)
			if err != nil {
				return err
			}
			successf(out, "Wrote analysis to %s", p)
			written = true
		}
		if anaProject != "" {
			p, err := loadProjectByName(anaProject)
			if err != nil {
				return err
			}
			saved, err := saveToProject(p, path, name, regTarget, opt, art)
			if err != nil {
				return err
			}
			successf(out, "Added analysis to project '%s' as %s", p.Name, filepath.Base(saved))
			written = true
		}
		if !written {
			if _, err := (export.WriterSaver{W: out}).Save(art); err != nil {
				return err
			}
		}
		log.Infow("analysis complete", "format", string(format), "bytes", len(art.Content))
		return nil
	},
}

// saveToProject writes the artifact into the project's reports directory and
// records it, registering the dataset first when the project does not know it.
func saveToProject(p *project.Project, path, name, target string, opt dataset.Options, art *export.Artifact) (string, error) {
	ref := p.DatasetByPath(path)
	if ref == nil {
		r, err := p.AddDataset(path, name, target, opt)
		if err != nil {
			return "", err
		}
		ref = r
	}
	saved, err := export.FileSaver{Dir: p.ReportsDir()}.Save(art)
	if err != nil {
		return "", err
	}
	p.RecordReport(ref.ID, filepath.Base(saved), art.MIMEType)
	if err := p.Save(); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	return saved, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaLoad.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaProject, "project", "p", "", "project name to attach the report to")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "path to write the report to")
	analyzeCmd.Flags().StringVar(&anaOutDir, "out-dir", "", "directory to write <name>_analysis_report.<ext> into")
	analyzeCmd.Flags().StringVar(&anaName, "name", "", "dataset display name (default derived from the file name)")
	analyzeCmd.Flags().StringVar(&anaTarget, "target", "", "target column for class-imbalance analysis")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: md | html | json (default from config)")
}
