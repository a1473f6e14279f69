package analysis

import (
	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
)

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeNumerical   ColumnType = "numerical"
	TypeCategorical ColumnType = "categorical"
	TypeBinary      ColumnType = "binary"
	// TypeOrdinal is a declared category; inference never assigns it.
	TypeOrdinal ColumnType = "ordinal"
)

// StorageKind is the underlying value kind of a column.
type StorageKind string

const (
	KindNumber StorageKind = "number"
	KindText   StorageKind = "text"
)

// ColumnProfile is per-column metadata derived from a dataset.
type ColumnProfile struct {
	Name        string      `json:"name"`
	Type        ColumnType  `json:"type"`
	Kind        StorageKind `json:"kind"`
	NullCount   int         `json:"null_count"`
	UniqueCount int         `json:"unique_count"`
}

// NonNull returns the number of present values given the dataset's row count.
func (p ColumnProfile) NonNull(rows int) int { return rows - p.NullCount }

// InferColumnType classifies raw column values. First match wins:
// exactly two distinct values is binary, fully numeric is numerical,
// everything else is categorical.
func InferColumnType(values []dataset.Value) ColumnType {
	present := nonMissing(values)
	distinct := countDistinct(present)
	if distinct == 2 {
		return TypeBinary
	}
	if allNumeric(present) {
		return TypeNumerical
	}
	if distinct > 2 && distinct <= 10 {
		return TypeCategorical
	}
	return TypeCategorical
}

// ProfileValues builds a ColumnProfile from a column's raw values.
func ProfileValues(name string, values []dataset.Value) ColumnProfile {
	present := nonMissing(values)
	kind := KindText
	if allNumeric(present) {
		kind = KindNumber
	}
	return ColumnProfile{
		Name:        name,
		Type:        InferColumnType(values),
		Kind:        kind,
		NullCount:   len(values) - len(present),
		UniqueCount: countDistinct(present),
	}
}

// Profile computes the ColumnProfile of one column. Unknown columns profile as all-null.
func Profile(ds *dataset.Dataset, column string) ColumnProfile {
	return ProfileValues(column, ds.Column(column))
}

// Profiles returns one profile per column in display order.
func Profiles(ds *dataset.Dataset) []ColumnProfile {
	cols := ds.Columns()
	out := make([]ColumnProfile, 0, len(cols))
	for _, c := range cols {
		out = append(out, Profile(ds, c))
	}
	return out
}

func nonMissing(values []dataset.Value) []dataset.Value {
	out := make([]dataset.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			out = append(out, v)
		}
	}
	return out
}

// countDistinct counts values by identity: the number 1 and the text "1" differ.
func countDistinct(values []dataset.Value) int {
	seen := make(map[dataset.Value]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// allNumeric reports whether there is at least one value and every value coerces to a number.
func allNumeric(values []dataset.Value) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := v.Float(); !ok {
			return false
		}
	}
	return true
}
