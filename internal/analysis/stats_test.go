package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

func TestDescribe_Numeric(t *testing.T) {
	s := Describe(vals("3", "1", "4", "2"))

	require.True(t, s.IsNumeric())
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2.5, *s.Mean)
	assert.Equal(t, 1.12, *s.Std)
	assert.Equal(t, 1.0, *s.Min)
	assert.Equal(t, 2.0, *s.Q25)
	assert.Equal(t, 3.0, *s.Q50, "q50 is sorted[floor(4*0.5)]")
	assert.Equal(t, 4.0, *s.Q75)
	assert.Equal(t, 4.0, *s.Max)
	assert.Nil(t, s.Unique)
	assert.Nil(t, s.Top)
}

func TestDescribe_NumericIgnoresNulls(t *testing.T) {
	s := Describe(vals("10", "NA", "", "20", "NaN"))

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 15.0, *s.Mean)
	assert.Equal(t, 5.0, *s.Std, "population std divides by N")
	assert.Equal(t, 10.0, *s.Q25)
	assert.Equal(t, 20.0, *s.Q50)
}

func TestDescribe_QuartilesAreUnrounded(t *testing.T) {
	s := Describe(vals("0.333", "1.6667", "2.12345"))

	assert.Equal(t, 0.333, *s.Min)
	assert.Equal(t, 1.6667, *s.Q50)
	assert.Equal(t, 2.12345, *s.Max)
	assert.Equal(t, 1.37, *s.Mean)
}

func TestDescribe_Categorical(t *testing.T) {
	s := Describe(vals("S", "C", "S", "Q", "NA", "C", "S"))

	require.False(t, s.IsNumeric())
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 3, *s.Unique)
	assert.Equal(t, "S", *s.Top)
	assert.Equal(t, 3, *s.Freq)
	assert.Nil(t, s.Mean)
}

func TestDescribe_ModeTieGoesToFirstSeen(t *testing.T) {
	s := Describe(vals("b", "a", "a", "b", "c"))
	assert.Equal(t, "b", *s.Top)
	assert.Equal(t, 2, *s.Freq)

	s = Describe(vals("a", "b", "b", "a"))
	assert.Equal(t, "a", *s.Top)
}

func TestDescribe_MixedColumnIsCategorical(t *testing.T) {
	s := Describe(vals("1", "x", "1"))

	assert.False(t, s.IsNumeric())
	assert.Equal(t, "1", *s.Top)
	assert.Equal(t, 2, *s.Freq)
}

func TestDescribe_AllNull(t *testing.T) {
	s := Describe(vals("", "NA"))

	assert.Equal(t, Summary{}, s)
	_, ok := s.Stat("mean")
	assert.False(t, ok)
	v, ok := s.Stat("count")
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}

func TestDescribeColumn_UnknownColumn(t *testing.T) {
	ds := dataset.Parse("a\n1")
	assert.Equal(t, Summary{}, DescribeColumn(ds, "b"))
}

func TestSummary_Stat(t *testing.T) {
	s := Describe(vals("1", "2", "3", "4"))
	got := make([]string, 0, len(NumericStatNames))
	for _, name := range NumericStatNames {
		v, ok := s.Stat(name)
		require.True(t, ok, name)
		got = append(got, v)
	}
	assert.Equal(t, []string{"4", "2.5", "1.12", "1", "2", "3", "4", "4"}, got)

	c := Describe(vals("x", "y", "x"))
	top, ok := c.Stat("top")
	assert.True(t, ok)
	assert.Equal(t, "x", top)
	_, ok = c.Stat("bogus")
	assert.False(t, ok)
}
