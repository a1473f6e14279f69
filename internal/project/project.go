package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/utils"
)

const (
	projectFileName = "project.json"
	reportsDirName  = "reports"
)

// ErrDatasetNotFound is returned when a dataset reference matches nothing.
var ErrDatasetNotFound = errors.New("dataset not found")

// Project is a named workspace of registered datasets persisted on disk.
type Project struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Datasets    map[string]*DatasetRef `json:"datasets"`
	Reports     []ReportRecord         `json:"reports"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	now := time.Now()
	return &Project{
		Name:        name,
		Description: description,
		Datasets:    make(map[string]*DatasetRef),
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, projectFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Datasets == nil {
		p.Datasets = make(map[string]*DatasetRef)
	}
	p.rootDir = dir
	return &p, nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// ReportsDir is where saved reports of the project live.
func (p *Project) ReportsDir() string { return filepath.Join(p.rootDir, reportsDirName) }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, projectFileName), data)
}

// AddDataset loads the file to validate it and registers it under a new ID.
// An empty name defaults to the file's display name. A non-empty target must
// be one of the dataset's columns.
func (p *Project) AddDataset(path, name, target string, opt dataset.Options) (*DatasetRef, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	ds, err := dataset.Load(abs, opt)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if target != "" && !ds.HasColumn(target) {
		return nil, fmt.Errorf("target column %q not in %s", target, filepath.Base(path))
	}
	if name == "" {
		name = dataset.DisplayName(path)
	}
	shape := ds.Shape()
	ref := &DatasetRef{
		ID:         uuid.NewString(),
		Path:       abs,
		Name:       name,
		Target:     target,
		Delimiter:  delimiterString(opt.Delimiter),
		SheetName:  opt.SheetName,
		SheetIndex: opt.SheetIndex,
		Rows:       shape.Rows,
		Columns:    len(ds.Columns()),
		AddedAt:    time.Now(),
	}
	if p.Datasets == nil {
		p.Datasets = make(map[string]*DatasetRef)
	}
	p.Datasets[ref.ID] = ref
	p.UpdatedAt = time.Now()
	return ref, nil
}

// FindDataset resolves a dataset by ID, ID prefix or case-insensitive name.
func (p *Project) FindDataset(ref string) (*DatasetRef, error) {
	if d, ok := p.Datasets[ref]; ok {
		return d, nil
	}
	var matches []*DatasetRef
	for _, d := range p.SortedDatasets() {
		if strings.EqualFold(d.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(d.ID, ref)) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("dataset reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// DatasetByPath returns the dataset registered for a file, or nil.
func (p *Project) DatasetByPath(path string) *DatasetRef {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	for _, d := range p.SortedDatasets() {
		if d.Path == abs {
			return d
		}
	}
	return nil
}

// SetTarget changes the target column of a registered dataset. The dataset is
// reloaded to check the column exists; an empty column clears the target.
func (p *Project) SetTarget(ref, column string) error {
	d, err := p.FindDataset(ref)
	if err != nil {
		return err
	}
	if column != "" {
		ds, err := dataset.Load(d.Path, d.Options())
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		if !ds.HasColumn(column) {
			return fmt.Errorf("target column %q not in %s", column, d.Name)
		}
	}
	d.Target = column
	p.UpdatedAt = time.Now()
	return nil
}

// RecordReport appends a saved report to the project history.
func (p *Project) RecordReport(datasetID, file, mimeType string) ReportRecord {
	r := ReportRecord{
		ID:        uuid.NewString(),
		DatasetID: datasetID,
		File:      file,
		MIMEType:  mimeType,
		CreatedAt: time.Now(),
	}
	p.Reports = append(p.Reports, r)
	p.UpdatedAt = time.Now()
	return r
}

// SortedDatasets returns datasets ordered by AddedAt, then name.
func (p *Project) SortedDatasets() []*DatasetRef {
	out := make([]*DatasetRef, 0, len(p.Datasets))
	for _, d := range p.Datasets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Options returns the loader options recorded for the dataset.
func (d *DatasetRef) Options() dataset.Options {
	opt := dataset.DefaultOptions()
	opt.Delimiter = 0
	if r := []rune(d.Delimiter); len(r) == 1 {
		opt.Delimiter = r[0]
	}
	opt.SheetName = d.SheetName
	if d.SheetIndex > 0 {
		opt.SheetIndex = d.SheetIndex
	}
	return opt
}

func delimiterString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}
