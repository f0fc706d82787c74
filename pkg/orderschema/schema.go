// Package orderschema declares per-exchange order field constraints and
// validates outbound order tables against them before anything is signed
// or transmitted. Schemas compose: a common base plus exchange-specific
// overrides merged explicitly, so precedence is auditable.
package orderschema

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"nakula/pkg/core"
)

// FieldType constrains the canonical type of an order field.
type FieldType int

// Field type constants.
const (
	// TypeString requires a string value.
	TypeString FieldType = iota
	// TypeNumber requires a decimal numeric value.
	TypeNumber
	// TypeBool requires a boolean value.
	TypeBool
)

// String returns the string representation of the field type.
func (t FieldType) String() string {
	return [...]string{"STRING", "NUMBER", "BOOL"}[t]
}

// Field is a single declarative order field constraint.
type Field struct {
	// Name is the wire name of the field.
	Name string
	// Required marks the field as mandatory in every order table.
	Required bool
	// Type is the canonical type every value must hold.
	Type FieldType
	// Allowed, when non-empty, enumerates the accepted values in their
	// canonical text form.
	Allowed []string
	// Min and Max bound numeric fields inclusively when set. ExclusiveMin
	// turns the lower bound strict, for fields that must be positive.
	Min          *apd.Decimal
	Max          *apd.Decimal
	ExclusiveMin bool
	// Nullable permits nil cells.
	Nullable bool
	// Default, when set, is added as a constant column for fields absent
	// from the order table.
	Default *core.Value
}

// Schema is a named, ordered set of field constraints for one exchange.
// Schemas are immutable after construction and safe for concurrent use.
type Schema struct {
	exchange string
	fields   []Field
	index    map[string]int
}

// New builds a schema from the given fields. Duplicate field names are a
// configuration error.
func New(exchange string, fields ...Field) (*Schema, error) {
	s := &Schema{
		exchange: exchange,
		fields:   make([]Field, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, core.NewConfigError(exchange, "schema field with empty name")
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, core.NewConfigError(exchange, "duplicate schema field %q", f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustNew builds a schema and panics on a configuration error. Static
// per-exchange schemas use it at package initialization.
func MustNew(exchange string, fields ...Field) *Schema {
	s, err := New(exchange, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Exchange returns the exchange identifier this schema is scoped to.
func (s *Schema) Exchange() string {
	return s.exchange
}

// Fields returns the schema fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the constraint for the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Extend merges overrides into a copy of the schema under a new exchange
// name. A field with a matching name replaces the base definition in
// place; new fields append. The receiver is not modified.
func (s *Schema) Extend(exchange string, overrides ...Field) *Schema {
	merged := make([]Field, len(s.fields))
	copy(merged, s.fields)
	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.Name] = i
	}
	for _, f := range overrides {
		if i, ok := index[f.Name]; ok {
			merged[i] = f
			continue
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}
	return &Schema{exchange: exchange, fields: merged, index: index}
}

// dec parses a decimal literal for use in static schema tables.
func dec(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid decimal literal %q: %v", s, err))
	}
	return d
}

// value boxes a Value for use as a schema default.
func value(v core.Value) *core.Value {
	return &v
}
