package dataset

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind is the storage kind of a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is one cell: null, a number, or text. The zero Value is null.
// Values are comparable and can be used directly as map keys for distinct counts.
type Value struct {
	kind Kind
	num  float64
	text string
}

func Null() Value { return Value{} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Text(s string) Value { return Value{kind: KindText, text: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// IsMissing reports whether the value counts as missing: null or empty text.
func (v Value) IsMissing() bool {
	return v.kind == KindNull || (v.kind == KindText && v.text == "")
}

// Float coerces the value to a number. Text is coerced with ParseNumber.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		return ParseNumber(v.text)
	default:
		return 0, false
	}
}

// String returns the display form used for class labels and mode values.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindText:
		return v.text
	default:
		return "null"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// ParseNumber parses the whole trimmed string as a finite float64. Decimal
// and exponent forms are accepted, as are unsigned 0x, 0b and 0o integers.
// Hex floats, digit separators and infinities are not numbers.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if len(raw) > 2 && raw[0] == '0' {
		base := 0
		switch raw[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(raw[2:], base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			if math.IsInf(f, 0) {
				return 0, false
			}
			return f, true
		}
	}
	if strings.ContainsAny(raw, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatNumber prints a float in its shortest round-trip form: plain decimals
// for magnitudes in [1e-6, 1e21), exponent notation (1e+21, 1e-7) outside.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops leading zeros from the exponent: 1e-07 -> 1e-7.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

// ParseField converts a trimmed CSV field into a Value.
// Empty, NA and NaN are null; full numeric strings are numbers; the rest is text.
func ParseField(field string) Value {
	s := strings.TrimSpace(field)
	switch s {
	case "", "NA", "NaN":
		return Null()
	}
	if f, ok := ParseNumber(s); ok {
		return Number(f)
	}
	return Text(s)
}
