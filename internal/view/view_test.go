package view

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dsreport-cli/internal/analysis"
	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

const passengers = `Name,Age,Sex,Embarked,Survived
Braund,22,male,S,0
Cumings,38,female,C,1
Heikkinen,NA,female,S,1
Futrelle,35,female,S,1
Allen,35,male,,0`

func TestTable_RenderAligns(t *testing.T) {
	tb := &Table{Headers: []string{"a", "bb"}}
	tb.Append("long value", "x")
	tb.Append("日本", "y")

	var buf bytes.Buffer
	require.NoError(t, tb.Render(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "a"+strings.Repeat(" ", 11)+"bb", lines[0])
	assert.Equal(t, "----------  --", lines[1])
	assert.Equal(t, "long value  x", lines[2])
	// wide runes occupy two cells each
	assert.Equal(t, "日本"+strings.Repeat(" ", 8)+"y", lines[3])
}

func TestTable_TruncatesLongCells(t *testing.T) {
	tb := &Table{Headers: []string{"v"}}
	tb.Append(strings.Repeat("z", 100))
	assert.Equal(t, []int{MaxCellWidth}, tb.Widths())

	var buf bytes.Buffer
	require.NoError(t, tb.Render(&buf))
	assert.Contains(t, buf.String(), "…")
}

func TestPreview(t *testing.T) {
	ds := dataset.Parse(passengers)

	head := Preview(ds, 2, Head)
	assert.Equal(t, "Showing first 2 of 5 rows", head.Title)
	assert.Equal(t, []string{"Name", "Age", "Sex", "Embarked", "Survived"}, head.Headers)
	assert.Equal(t, []string{"Braund", "22", "male", "S", "0"}, head.Rows[0])

	tail := Preview(ds, 2, Tail)
	assert.Equal(t, "Showing last 2 of 5 rows", tail.Title)
	assert.Equal(t, []string{"Allen", "35", "male", "null", "0"}, tail.Rows[1])

	all := Preview(ds, 50, Head)
	assert.Len(t, all.Rows, 5)
}

func TestStatsTables(t *testing.T) {
	ds := dataset.Parse(passengers)
	profiles := analysis.Profiles(ds)

	num := NumericStats(ds, profiles)
	require.NotNil(t, num)
	assert.Equal(t, []string{"Statistic", "Age", "Survived"}, num.Headers)
	assert.Equal(t, []string{"count", "4", "5"}, num.Rows[0])
	assert.Equal(t, []string{"q50", "35", "1"}, num.Rows[5])

	cat := CategoricalStats(ds, profiles)
	require.NotNil(t, cat)
	assert.Equal(t, []string{"Statistic", "Name", "Sex", "Embarked"}, cat.Headers)
	assert.Equal(t, []string{"top", "Braund", "female", "S"}, cat.Rows[2])

	assert.Nil(t, NumericStats(dataset.Parse("a\nx\ny"), analysis.Profiles(dataset.Parse("a\nx\ny"))))
}

func TestColumnInfo(t *testing.T) {
	ds := dataset.Parse(passengers)
	tb := ColumnInfo(analysis.Profiles(ds), 5)
	assert.Equal(t, []string{"Age", "4", "number", "numerical", "3"}, tb.Rows[1])
}

func TestQualityPanel(t *testing.T) {
	ds := dataset.Parse(passengers)
	var buf bytes.Buffer
	Quality(&buf, analysis.Assess(ds, "Survived"))
	out := buf.String()

	assert.Contains(t, out, "⚠ Dataset may be too small for reliable ML models")
	assert.Contains(t, out, "✗ Missing values: 2 (8.00% of dataset)")
	assert.Contains(t, out, "Age: 1 missing (20.0%)")
	assert.Contains(t, out, "✓ Target variable balance (Survived)")
	assert.Contains(t, out, "0: 2 (40.0%)")
	assert.Contains(t, out, "Features: numerical 1, categorical 1, binary 3, ordinal 0")
}

func TestQualityPanel_NoRows(t *testing.T) {
	var buf bytes.Buffer
	Quality(&buf, nil)
	assert.Contains(t, buf.String(), "No data rows")
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "Titanic", dataset.Parse(passengers), Options{Rows: 3, Target: "Survived"})
	require.NoError(t, err)
	out := buf.String()

	for _, want := range []string{
		"Titanic\n",
		"Shape: 5 rows x 5 columns",
		"Showing first 3 of 5 rows",
		"Column Information",
		"Numerical Statistics",
		"Categorical Statistics",
		"Data Quality Analysis",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Column Information"), strings.Index(out, "Data Quality Analysis"))
}

func TestRender_RoundsTiesUp(t *testing.T) {
	lines := []string{"a,b"}
	for i := 0; i < 8; i++ {
		lines = append(lines, "1,x")
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "small", dataset.Parse(strings.Join(lines, "\n")), Options{}))
	assert.Contains(t, buf.String(), "Shape: 8 rows x 2 columns, ~0.13 KB")
}
