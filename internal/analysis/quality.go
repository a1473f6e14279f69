package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

const (
	// MinRowsForML and MinColumnsForML are the fixed ML-suitability thresholds.
	MinRowsForML    = 30
	MinColumnsForML = 2
	// ImbalanceThreshold is the max/min class-count ratio above which a target is imbalanced.
	ImbalanceThreshold = 1.5
)

// ClassCount is one observed target class and its occurrences.
type ClassCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ImbalanceReport describes the class distribution of a target column.
type ImbalanceReport struct {
	Target string `json:"target"`
	// Classes with integer labels ascending first, then the rest in first-seen order.
	Classes      []ClassCount `json:"classes"`
	Ratio        string       `json:"ratio"`
	IsImbalanced bool         `json:"is_imbalanced"`
}

// Distribution returns the class counts as a map.
func (r *ImbalanceReport) Distribution() map[string]int {
	out := make(map[string]int, len(r.Classes))
	for _, c := range r.Classes {
		out[c.Label] = c.Count
	}
	return out
}

// FeatureTally counts columns per inferred type.
type FeatureTally struct {
	Numerical   int `json:"numerical"`
	Categorical int `json:"categorical"`
	Binary      int `json:"binary"`
	Ordinal     int `json:"ordinal"`
}

// Quality aggregates missingness, ML suitability and target balance of a dataset.
type Quality struct {
	Shape            dataset.Shape    `json:"shape"`
	Profiles         []ColumnProfile  `json:"-"`
	ColumnsWithNulls []ColumnProfile  `json:"columns_with_nulls"`
	TotalNulls       int              `json:"total_nulls"`
	NullPercentage   float64          `json:"null_percentage"`
	SuitableForML    bool             `json:"suitable_for_ml"`
	Features         FeatureTally     `json:"features"`
	Imbalance        *ImbalanceReport `json:"imbalance,omitempty"`
}

// HasNulls reports whether any column has missing values.
func (q *Quality) HasNulls() bool { return len(q.ColumnsWithNulls) > 0 }

// IsImbalanced reports whether a target was checked and found imbalanced.
func (q *Quality) IsImbalanced() bool { return q.Imbalance != nil && q.Imbalance.IsImbalanced }

// SuitableForML applies the fixed size heuristic: at least 30 rows and 2 columns.
func SuitableForML(s dataset.Shape) bool {
	return s.Rows >= MinRowsForML && s.Columns >= MinColumnsForML
}

// Tally counts profiles per column type.
func Tally(profiles []ColumnProfile) FeatureTally {
	var t FeatureTally
	for _, p := range profiles {
		switch p.Type {
		case TypeNumerical:
			t.Numerical++
		case TypeCategorical:
			t.Categorical++
		case TypeBinary:
			t.Binary++
		case TypeOrdinal:
			t.Ordinal++
		}
	}
	return t
}

// CheckImbalance builds the class distribution of target. It returns nil when
// target is empty, not a column, or has no non-null values.
func CheckImbalance(ds *dataset.Dataset, target string) *ImbalanceReport {
	if target == "" || !ds.HasColumn(target) {
		return nil
	}
	var present []dataset.Value
	for _, v := range ds.Column(target) {
		if !v.IsNull() {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil
	}
	freq := frequencies(present)
	rep := &ImbalanceReport{Target: target, Classes: make([]ClassCount, 0, freq.Len())}
	lo, hi := -1, 0
	for el := freq.Front(); el != nil; el = el.Next() {
		rep.Classes = append(rep.Classes, ClassCount{Label: el.Key, Count: el.Value})
		if el.Value > hi {
			hi = el.Value
		}
		if lo < 0 || el.Value < lo {
			lo = el.Value
		}
	}
	orderClasses(rep.Classes)
	rep.Ratio = fmt.Sprintf("%d:%d", lo, hi)
	rep.IsImbalanced = float64(hi)/float64(lo) > ImbalanceThreshold
	return rep
}

// orderClasses moves integer-like labels to the front in ascending order.
// Other labels keep their first-seen order.
func orderClasses(classes []ClassCount) {
	sort.SliceStable(classes, func(i, j int) bool {
		a, aok := classIndex(classes[i].Label)
		b, bok := classIndex(classes[j].Label)
		if aok && bok {
			return a < b
		}
		return aok && !bok
	})
}

// classIndex reports whether label is a canonical non-negative integer
// ("0", "7", "42", not "007" or "-1") below 2^32-1.
func classIndex(label string) (uint64, bool) {
	if label == "" || (len(label) > 1 && label[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(label, 10, 64)
	if err != nil || n >= math.MaxUint32 {
		return 0, false
	}
	return n, true
}

// Assess computes the quality report. It returns nil for a dataset with no rows or columns.
func Assess(ds *dataset.Dataset, target string) *Quality {
	shape := ds.Shape()
	if shape.Rows == 0 || shape.Columns == 0 {
		return nil
	}
	q := &Quality{
		Shape:         shape,
		Profiles:      Profiles(ds),
		SuitableForML: SuitableForML(shape),
		Imbalance:     CheckImbalance(ds, target),
	}
	for _, p := range q.Profiles {
		if p.NullCount > 0 {
			q.ColumnsWithNulls = append(q.ColumnsWithNulls, p)
			q.TotalNulls += p.NullCount
		}
	}
	pct := float64(q.TotalNulls) / float64(shape.Rows*shape.Columns) * 100
	q.NullPercentage, _ = stats.Round(pct, 2)
	q.Features = Tally(q.Profiles)
	return q
}
