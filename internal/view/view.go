package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"

	"github.com/KaramelBytes/dsreport-cli/internal/analysis"
	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

// Window selects which end of the dataset a preview shows.
type Window int

const (
	Head Window = iota
	Tail
)

// Options controls the describe view.
type Options struct {
	Rows   int
	Window Window
	Target string
}

// Preview tabulates the first or last n rows.
func Preview(ds *dataset.Dataset, n int, win Window) *Table {
	recs := ds.Head(n)
	which := "first"
	if win == Tail {
		recs = ds.Tail(n)
		which = "last"
	}
	t := &Table{
		Title:   fmt.Sprintf("Showing %s %d of %d rows", which, len(recs), ds.Shape().Rows),
		Headers: ds.Columns(),
	}
	for _, r := range recs {
		row := make([]string, len(t.Headers))
		for i, col := range t.Headers {
			v := r.Value(col)
			if v.IsNull() {
				row[i] = "null"
			} else {
				row[i] = v.String()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ColumnInfo tabulates the column profiles.
func ColumnInfo(profiles []analysis.ColumnProfile, rows int) *Table {
	t := &Table{
		Title:   "Column Information",
		Headers: []string{"Column", "Non-Null", "Kind", "Type", "Unique"},
	}
	for _, p := range profiles {
		t.Append(p.Name, strconv.Itoa(p.NonNull(rows)), string(p.Kind), string(p.Type), strconv.Itoa(p.UniqueCount))
	}
	return t
}

// NumericStats has one row per statistic and one column per numeric column.
// It returns nil when there are no numeric columns.
func NumericStats(ds *dataset.Dataset, profiles []analysis.ColumnProfile) *Table {
	return statsTable(ds, "Numerical Statistics", analysis.NumericStatNames, profiles, analysis.KindNumber)
}

// CategoricalStats is NumericStats for text columns.
func CategoricalStats(ds *dataset.Dataset, profiles []analysis.ColumnProfile) *Table {
	return statsTable(ds, "Categorical Statistics", analysis.CategoricalStatNames, profiles, analysis.KindText)
}

func statsTable(ds *dataset.Dataset, title string, stats []string, profiles []analysis.ColumnProfile, kind analysis.StorageKind) *Table {
	var cols []string
	var summaries []analysis.Summary
	for _, p := range profiles {
		if p.Kind == kind {
			cols = append(cols, p.Name)
			summaries = append(summaries, analysis.DescribeColumn(ds, p.Name))
		}
	}
	if len(cols) == 0 {
		return nil
	}
	t := &Table{Title: title, Headers: append([]string{"Statistic"}, cols...)}
	for _, stat := range stats {
		row := []string{stat}
		for _, s := range summaries {
			v, ok := s.Stat(stat)
			if !ok {
				v = "-"
			}
			row = append(row, v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Quality writes the quality panel with colored verdicts.
func Quality(w io.Writer, q *analysis.Quality) {
	if q == nil {
		fmt.Fprintln(w, color.Yellow.Sprint("⚠ No data rows to assess"))
		return
	}
	fmt.Fprintln(w, "Data Quality Analysis")
	fmt.Fprintf(w, "  Rows: %d | Columns: %d\n", q.Shape.Rows, q.Shape.Columns)
	if q.SuitableForML {
		fmt.Fprintln(w, "  "+color.Green.Sprint("✓ Dataset is suitable for machine learning"))
	} else {
		fmt.Fprintln(w, "  "+color.Yellow.Sprint("⚠ Dataset may be too small for reliable ML models"))
	}

	if q.HasNulls() {
		fmt.Fprintln(w, "  "+color.Red.Sprintf("✗ Missing values: %d (%s%% of dataset)", q.TotalNulls, analysis.Fixed(q.NullPercentage, 2)))
		for _, p := range q.ColumnsWithNulls {
			fmt.Fprintf(w, "      %s: %d missing (%s%%)\n", p.Name, p.NullCount, analysis.PercentOf(p.NullCount, q.Shape.Rows))
		}
	} else {
		fmt.Fprintln(w, "  "+color.Green.Sprint("✓ No missing values found in the dataset"))
	}

	if im := q.Imbalance; im != nil {
		verdict := color.Green.Sprintf("✓ Target variable balance (%s)", im.Target)
		if im.IsImbalanced {
			verdict = color.Yellow.Sprintf("⚠ Target variable balance (%s): imbalanced, ratio %s", im.Target, im.Ratio)
		}
		fmt.Fprintln(w, "  "+verdict)
		for _, c := range im.Classes {
			fmt.Fprintf(w, "      %s: %d (%s%%)\n", c.Label, c.Count, analysis.PercentOf(c.Count, q.Shape.Rows))
		}
	}

	f := q.Features
	fmt.Fprintf(w, "  Features: numerical %d, categorical %d, binary %d, ordinal %d\n",
		f.Numerical, f.Categorical, f.Binary, f.Ordinal)
}

// Render writes the full describe view of a dataset.
func Render(w io.Writer, name string, ds *dataset.Dataset, opt Options) error {
	shape := ds.Shape()
	fmt.Fprintln(w, color.Bold.Sprint(name))
	fmt.Fprintf(w, "Shape: %d rows x %d columns, ~%s KB\n\n", shape.Rows, shape.Columns, analysis.Fixed(analysis.MemoryKB(shape), 2))

	q := analysis.Assess(ds, opt.Target)
	var tables []*Table
	if opt.Rows > 0 {
		tables = append(tables, Preview(ds, opt.Rows, opt.Window))
	}
	if q != nil {
		tables = append(tables,
			ColumnInfo(q.Profiles, shape.Rows),
			NumericStats(ds, q.Profiles),
			CategoricalStats(ds, q.Profiles),
		)
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		if err := t.Render(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	Quality(w, q)
	return nil
}
