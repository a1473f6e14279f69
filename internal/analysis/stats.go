package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

// Summary holds descriptive statistics for one column. Numeric columns fill
// Mean through Max; other columns fill Unique, Top and Freq. Absent fields are nil.
type Summary struct {
	Count int `json:"count"`

	Mean *float64 `json:"mean,omitempty"`
	Std  *float64 `json:"std,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	Q25  *float64 `json:"q25,omitempty"`
	Q50  *float64 `json:"q50,omitempty"`
	Q75  *float64 `json:"q75,omitempty"`
	Max  *float64 `json:"max,omitempty"`

	Unique *int    `json:"unique,omitempty"`
	Top    *string `json:"top,omitempty"`
	Freq   *int    `json:"freq,omitempty"`
}

// NumericStatNames is the fixed row order of numeric statistics tables.
var NumericStatNames = []string{"count", "mean", "std", "min", "q25", "q50", "q75", "max"}

// CategoricalStatNames is the fixed row order of categorical statistics tables.
var CategoricalStatNames = []string{"count", "unique", "top", "freq"}

// IsNumeric reports whether the summary has the numeric shape.
func (s Summary) IsNumeric() bool { return s.Mean != nil }

// Stat returns a named statistic formatted for display, and false when absent.
func (s Summary) Stat(name string) (string, bool) {
	num := func(p *float64) (string, bool) {
		if p == nil {
			return "", false
		}
		return dataset.FormatNumber(*p), true
	}
	integer := func(p *int) (string, bool) {
		if p == nil {
			return "", false
		}
		return strconv.Itoa(*p), true
	}
	switch name {
	case "count":
		return strconv.Itoa(s.Count), true
	case "mean":
		return num(s.Mean)
	case "std":
		return num(s.Std)
	case "min":
		return num(s.Min)
	case "q25":
		return num(s.Q25)
	case "q50":
		return num(s.Q50)
	case "q75":
		return num(s.Q75)
	case "max":
		return num(s.Max)
	case "unique":
		return integer(s.Unique)
	case "top":
		if s.Top == nil {
			return "", false
		}
		return *s.Top, true
	case "freq":
		return integer(s.Freq)
	}
	return "", false
}

// Describe computes the Summary of a column's raw values.
func Describe(values []dataset.Value) Summary {
	present := nonMissing(values)
	if len(present) == 0 {
		return Summary{}
	}
	if allNumeric(present) {
		nums := make([]float64, len(present))
		for i, v := range present {
			nums[i], _ = v.Float()
		}
		return describeNumeric(nums)
	}
	return describeCategorical(present)
}

// DescribeColumn computes the Summary of one dataset column.
func DescribeColumn(ds *dataset.Dataset, column string) Summary {
	return Describe(ds.Column(column))
}

func describeNumeric(nums []float64) Summary {
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	// Inputs are non-empty and finite, so the stats calls cannot fail.
	mean, _ := stats.Mean(sorted)
	std, _ := stats.StandardDeviationPopulation(sorted)
	mean, _ = stats.Round(mean, 2)
	std, _ = stats.Round(std, 2)

	return Summary{
		Count: len(sorted),
		Mean:  &mean,
		Std:   &std,
		Min:   ptr(sorted[0]),
		Q25:   ptr(nearestRank(sorted, 0.25)),
		Q50:   ptr(nearestRank(sorted, 0.50)),
		Q75:   ptr(nearestRank(sorted, 0.75)),
		Max:   ptr(sorted[len(sorted)-1]),
	}
}

// nearestRank selects sorted[floor(n*p)] without interpolation. p must be < 1.
func nearestRank(sorted []float64, p float64) float64 {
	return sorted[int(math.Floor(float64(len(sorted))*p))]
}

func describeCategorical(present []dataset.Value) Summary {
	freq := frequencies(present)
	top, best := "", 0
	// Scan in first-seen order; strict > keeps the earliest value on ties.
	for el := freq.Front(); el != nil; el = el.Next() {
		if el.Value > best {
			top, best = el.Key, el.Value
		}
	}
	unique := countDistinct(present)
	return Summary{
		Count:  len(present),
		Unique: &unique,
		Top:    &top,
		Freq:   &best,
	}
}

// frequencies counts values by their string form in first-seen order.
func frequencies(values []dataset.Value) *orderedmap.OrderedMap[string, int] {
	m := orderedmap.NewOrderedMap[string, int]()
	for _, v := range values {
		n, _ := m.Get(v.String())
		m.Set(v.String(), n+1)
	}
	return m
}

func ptr[T any](v T) *T { return &v }
