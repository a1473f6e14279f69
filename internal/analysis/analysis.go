// Package analysis infers column types, computes descriptive statistics,
// assesses data quality and renders analysis reports. Every function is a pure
// computation over a dataset.Dataset.
package analysis

import (
	"time"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

// ColumnAnalysis pairs a column's profile with its statistics.
type ColumnAnalysis struct {
	ColumnProfile
	Summary Summary `json:"summary"`
}

// Analysis is the machine-readable form of a report.
type Analysis struct {
	Name        string           `json:"name"`
	Target      string           `json:"target,omitempty"`
	Shape       dataset.Shape    `json:"shape"`
	MemoryKB    float64          `json:"memory_kb"`
	Columns     []ColumnAnalysis `json:"columns"`
	Quality     *Quality         `json:"quality,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Analyze computes profiles, summaries and quality for a dataset in one pass.
func Analyze(name string, ds *dataset.Dataset, target string, now time.Time) *Analysis {
	shape := ds.Shape()
	a := &Analysis{
		Name:        name,
		Target:      target,
		Shape:       shape,
		MemoryKB:    MemoryKB(shape),
		Quality:     Assess(ds, target),
		GeneratedAt: now,
	}
	for _, p := range Profiles(ds) {
		a.Columns = append(a.Columns, ColumnAnalysis{ColumnProfile: p, Summary: DescribeColumn(ds, p.Name)})
	}
	return a
}

// MemoryKB is the synthetic memory estimate of eight bytes per cell.
func MemoryKB(s dataset.Shape) float64 {
	return float64(s.Rows*s.Columns*8) / 1024
}
