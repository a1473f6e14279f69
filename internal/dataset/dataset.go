package dataset

import (
	"bytes"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/goccy/go-json"
)

// Record maps column names to values, preserving header order.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func newRecord() Record {
	return Record{fields: orderedmap.NewOrderedMap[string, Value]()}
}

// Get returns the value stored for col and whether the column exists.
func (r Record) Get(col string) (Value, bool) {
	if r.fields == nil {
		return Null(), false
	}
	return r.fields.Get(col)
}

// Value returns the value for col, or null when the column does not exist.
func (r Record) Value(col string) Value {
	v, _ := r.Get(col)
	return v
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	if r.fields == nil {
		return nil
	}
	return r.fields.Keys()
}

func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

func (r Record) set(col string, v Value) {
	r.fields.Set(col, v)
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	if r.fields != nil {
		i := 0
		for el := r.fields.Front(); el != nil; el = el.Next() {
			if i > 0 {
				b.WriteByte(',')
			}
			k, err := json.Marshal(el.Key)
			if err != nil {
				return nil, err
			}
			v, err := el.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(k)
			b.WriteByte(':')
			b.Write(v)
			i++
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Shape is the row and column count of a dataset.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Dataset is an immutable, in-memory table. Replace it wholesale rather than
// mutating rows in place.
type Dataset struct {
	// Header holds the trimmed header fields exactly as read, duplicates included.
	Header []string
	Rows   []Record
}

// Shape returns the row count and the column count of the first record
// (zero when there are no rows).
func (d *Dataset) Shape() Shape {
	if d == nil || len(d.Rows) == 0 {
		return Shape{}
	}
	return Shape{Rows: len(d.Rows), Columns: d.Rows[0].Len()}
}

// Columns returns the column names in display order, or nil for an empty dataset.
func (d *Dataset) Columns() []string {
	if d == nil || len(d.Rows) == 0 {
		return nil
	}
	return d.Rows[0].Columns()
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil || len(d.Rows) == 0 {
		return false
	}
	_, ok := d.Rows[0].Get(name)
	return ok
}

// Column returns one value per row for name. Unknown columns yield all nulls.
func (d *Dataset) Column(name string) []Value {
	if d == nil {
		return nil
	}
	out := make([]Value, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Value(name)
	}
	return out
}

// Head returns up to n records from the start of the dataset.
func (d *Dataset) Head(n int) []Record {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Tail returns up to n records from the end of the dataset.
func (d *Dataset) Tail(n int) []Record {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[len(d.Rows)-n:]
}
