package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies the variant held by a Value.
type Kind int

// Kind constants cover every shape a decoded response cell can take.
const (
	// KindNil represents an absent or JSON null value.
	KindNil Kind = iota
	// KindString represents a string scalar.
	KindString
	// KindNumber represents a decimal numeric scalar.
	KindNumber
	// KindBool represents a boolean scalar.
	KindBool
	// KindTime represents a timestamp scalar.
	KindTime
	// KindMapping represents a nested key/value object.
	KindMapping
	// KindSequence represents an ordered list of values.
	KindSequence
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return [...]string{
		"NIL",
		"STRING",
		"NUMBER",
		"BOOL",
		"TIME",
		"MAPPING",
		"SEQUENCE",
	}[k]
}

// Value is a tagged variant holding one cell of a decoded response graph.
// Every value is exactly one of: nil, string, number, bool, time, mapping,
// or sequence. The tag drives normalization and coercion instead of runtime
// type probing.
type Value struct {
	kind Kind
	str  string
	num  *apd.Decimal
	b    bool
	t    time.Time
	m    *Mapping
	seq  []Value
}

// Nil returns the nil value.
func Nil() Value {
	return Value{kind: KindNil}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value holding the given decimal.
func Number(d *apd.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// NumberFromInt returns a numeric value holding the given integer.
func NumberFromInt(i int64) Value {
	return Value{kind: KindNumber, num: apd.New(i, 0)}
}

// NumberFromString parses s as a decimal and returns a numeric value.
func NumberFromString(s string) (Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Nil(), fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Number(d), nil
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time returns a timestamp value.
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Map returns a mapping value. A nil mapping yields the nil value.
func Map(m *Mapping) Value {
	if m == nil {
		return Nil()
	}
	return Value{kind: KindMapping, m: m}
}

// Seq returns a sequence value.
func Seq(vals []Value) Value {
	return Value{kind: KindSequence, seq: vals}
}

// FromJSON converts a decoded JSON graph (maps, slices, strings, numbers,
// booleans, nil) into a tagged Value. Map keys are sorted so that the
// resulting mapping order, and therefore downstream column order, is
// deterministic regardless of decoder behavior.
func FromJSON(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil()
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case float64:
		d, _, err := apd.NewFromString(strconv.FormatFloat(val, 'g', -1, 64))
		if err != nil {
			return Nil()
		}
		return Number(d)
	case int:
		return NumberFromInt(int64(val))
	case int64:
		return NumberFromInt(val)
	case json.Number:
		d, _, err := apd.NewFromString(val.String())
		if err != nil {
			return String(val.String())
		}
		return Number(d)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromJSON(val[k]))
		}
		return Map(m)
	case []any:
		seq := make([]Value, 0, len(val))
		for _, item := range val {
			seq = append(seq, FromJSON(item))
		}
		return Seq(seq)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// Kind returns the variant tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is nil/absent.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// Str returns the string payload. The second return is false when the
// value is not a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the numeric payload. The second return is false when the
// value is not a number.
func (v Value) Num() (*apd.Decimal, bool) {
	if v.kind != KindNumber {
		return nil, false
	}
	return v.num, true
}

// BoolVal returns the boolean payload. The second return is false when
// the value is not a boolean.
func (v Value) BoolVal() (bool, bool) {
	return v.b, v.kind == KindBool
}

// TimeVal returns the timestamp payload. The second return is false when
// the value is not a timestamp.
func (v Value) TimeVal() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// MapVal returns the nested mapping. The second return is false when the
// value is not a mapping.
func (v Value) MapVal() (*Mapping, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.m, true
}

// SeqVal returns the nested sequence. The second return is false when the
// value is not a sequence.
func (v Value) SeqVal() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// Text renders a scalar value in its canonical wire form: numbers in plain
// decimal notation, booleans as "true"/"false", timestamps as epoch
// milliseconds, nil as the empty string. Mappings and sequences render via
// their Go representation and are not intended for wire use.
func (v Value) Text() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return v.num.Text('f')
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return strconv.FormatInt(v.t.UnixMilli(), 10)
	default:
		return fmt.Sprintf("%v", v.any())
	}
}

func (v Value) any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindMapping:
		return v.m
	case KindSequence:
		return v.seq
	default:
		return nil
	}
}

// Equal reports deep equality between two values, comparing numbers by
// numeric value rather than representation.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num.Cmp(other.num) == 0
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	case KindMapping:
		return v.m.Equal(other.m)
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Mapping is an ordered string-keyed collection of values. Insertion order
// is preserved, which keeps derived column order and order-sensitive
// signing deterministic.
type Mapping struct {
	keys []string
	vals map[string]Value
}

// NewMapping creates an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: make(map[string]Value)}
}

// Set stores a value under key, appending the key on first insertion and
// keeping its original position on overwrite.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

// Get retrieves the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Mapping) Delete(key string) {
	if _, exists := m.vals[key]; !exists {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Clone returns a shallow copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, m.vals[k])
	}
	return out
}

// Equal reports whether two mappings hold the same keys in the same order
// with equal values.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !m.vals[k].Equal(other.vals[k]) {
			return false
		}
	}
	return true
}
