// Package export turns analysis results into named artifacts and saves them.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/dsreport-cli/internal/analysis"
	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/utils"
)

// Format is an output encoding of a report.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts md|markdown, html and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown", "":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use md|html|json)", s)
	}
}

// Ext is the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// MIMEType is the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatHTML:
		return "text/html"
	case FormatJSON:
		return "application/json"
	default:
		return "text/markdown"
	}
}

// Artifact is a rendered report ready to be saved.
type Artifact struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Build renders the report for a dataset in the given format. The file name
// is derived from the display name.
func Build(f Format, name string, ds *dataset.Dataset, target string, now time.Time) (*Artifact, error) {
	var content []byte
	switch f {
	case FormatMarkdown, FormatHTML:
		md := analysis.RenderReport(name, ds, target, analysis.RenderOptions{Now: func() time.Time { return now }})
		if f == FormatHTML {
			content = analysis.RenderHTML(md, "Dataset Analysis Report: "+name)
		} else {
			content = []byte(md)
		}
	case FormatJSON:
		b, err := utils.PrettyJSON(analysis.Analyze(name, ds, target, now))
		if err != nil {
			return nil, err
		}
		content = append(b, '\n')
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
	return &Artifact{
		Filename: analysis.ReportBaseName(name) + f.Ext(),
		MIMEType: f.MIMEType(),
		Content:  content,
	}, nil
}

// Saver persists artifacts and reports where each one ended up.
type Saver interface {
	Save(a *Artifact) (string, error)
}

// FileSaver writes artifacts into Dir. Unless Overwrite is set, an existing
// file is kept and the artifact gets a "__N" suffix.
type FileSaver struct {
	Dir       string
	Overwrite bool
}

// Save writes the artifact atomically and returns its path.
func (s FileSaver) Save(a *Artifact) (string, error) {
	if a == nil || a.Filename == "" {
		return "", errors.New("artifact has no filename")
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if !s.Overwrite {
		ext := filepath.Ext(a.Filename)
		path = utils.UniquePath(dir, strings.TrimSuffix(a.Filename, ext), ext)
	}
	if err := utils.SafeWriteFile(path, a.Content); err != nil {
		return "", fmt.Errorf("save %s: %w", a.Filename, err)
	}
	return path, nil
}

// PathSaver writes the artifact to a fixed path regardless of its name.
type PathSaver struct {
	Path string
}

// Save writes the artifact to s.Path.
func (s PathSaver) Save(a *Artifact) (string, error) {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := utils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := utils.SafeWriteFile(s.Path, a.Content); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return s.Path, nil
}

// WriterSaver streams the artifact content to W.
type WriterSaver struct {
	W io.Writer
}

// Save writes the content and returns "-".
func (s WriterSaver) Save(a *Artifact) (string, error) {
	if _, err := s.W.Write(a.Content); err != nil {
		return "", fmt.Errorf("write %s: %w", a.Filename, err)
	}
	return "-", nil
}
