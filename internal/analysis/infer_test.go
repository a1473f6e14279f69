package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

func vals(fields ...string) []dataset.Value {
	out := make([]dataset.Value, len(fields))
	for i, f := range fields {
		out[i] = dataset.ParseField(f)
	}
	return out
}

func TestInferColumnType(t *testing.T) {
	many := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		many = append(many, fmt.Sprintf("city%d", i))
	}
	tests := []struct {
		name   string
		values []dataset.Value
		want   ColumnType
	}{
		{"two numeric values are binary", vals("0", "1", "1", "0"), TypeBinary},
		{"two text values are binary", vals("male", "female", "male"), TypeBinary},
		{"nulls ignored for binary", vals("yes", "", "NA", "no"), TypeBinary},
		{"fully numeric", vals("1", "2", "3.5", "NA"), TypeNumerical},
		{"single numeric value", vals("7", "7"), TypeNumerical},
		{"few text values", vals("S", "C", "Q", "S"), TypeCategorical},
		{"mixed numeric and text", vals("1", "2", "x"), TypeCategorical},
		{"high cardinality text", vals(many...), TypeCategorical},
		{"all null", vals("", "NA", "NaN"), TypeCategorical},
		{"empty column", nil, TypeCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumnType(tt.values))
		})
	}
}

func TestInferColumnType_NeverOrdinal(t *testing.T) {
	inputs := [][]dataset.Value{
		vals("low", "medium", "high", "medium"),
		vals("1", "2", "3"),
		vals("a"),
	}
	for _, in := range inputs {
		assert.NotEqual(t, TypeOrdinal, InferColumnType(in))
	}
}

func TestProfile(t *testing.T) {
	ds := dataset.Parse("a,b,c\n1,NA,x\n,2,y\n3,4,x")

	a := Profile(ds, "a")
	assert.Equal(t, ColumnProfile{Name: "a", Type: TypeBinary, Kind: KindNumber, NullCount: 1, UniqueCount: 2}, a)

	b := Profile(ds, "b")
	assert.Equal(t, 1, b.NullCount)
	assert.Equal(t, KindNumber, b.Kind)

	c := Profile(ds, "c")
	assert.Equal(t, KindText, c.Kind)
	assert.Equal(t, TypeBinary, c.Type)
	assert.Equal(t, 0, c.NullCount)
	assert.Equal(t, 2, c.NonNull(3))
}

func TestProfile_UnknownColumnIsDegenerate(t *testing.T) {
	ds := dataset.Parse("a\n1\n2")

	p := Profile(ds, "nope")
	assert.Equal(t, 2, p.NullCount)
	assert.Equal(t, 0, p.UniqueCount)
	assert.Equal(t, KindText, p.Kind)
}

func TestProfile_Idempotent(t *testing.T) {
	ds := dataset.Parse(strings.Join([]string{"x,y", "1,a", "2,b", "NA,c", "4,a"}, "\n"))

	first := Profiles(ds)
	second := Profiles(ds)
	assert.Equal(t, first, second)
}

func TestProfile_NumberAndTextAreDistinct(t *testing.T) {
	values := []dataset.Value{dataset.Number(1), dataset.Text("1"), dataset.Number(1)}
	p := ProfileValues("mixed", values)
	assert.Equal(t, 2, p.UniqueCount)
	assert.Equal(t, TypeBinary, p.Type)
	// text "1" coerces, so the column is still fully numeric
	assert.Equal(t, KindNumber, p.Kind)
}
