// Package classify holds the per-exchange field classification registries
// that drive type coercion. A registry maps response field names to
// semantic kinds (epoch timestamp, string timestamp, numeric-as-string,
// boolean-as-string). Classification is always exchange-scoped: two
// exchanges may classify the same field name differently, so registries
// are never merged into a global table.
package classify

import (
	"nakula/pkg/core"
)

// Kind identifies the semantic type of a classified field.
type Kind int

// Kind constants define every classification a field can carry.
const (
	// Passthrough leaves the field's raw JSON-derived type untouched.
	Passthrough Kind = iota
	// IntEpochTimestamp marks an integer epoch timestamp field.
	IntEpochTimestamp
	// StringTimestamp marks an ISO-like string timestamp field.
	StringTimestamp
	// NumericString marks a numeric field transmitted as a string.
	NumericString
	// BooleanString marks a boolean field transmitted as a string token.
	BooleanString
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return [...]string{
		"PASSTHROUGH",
		"INT_EPOCH_TIMESTAMP",
		"STRING_TIMESTAMP",
		"NUMERIC_STRING",
		"BOOLEAN_STRING",
	}[k]
}

// Unit identifies the resolution of an integer epoch timestamp field.
type Unit int

// Unit constants define supported epoch resolutions.
const (
	// Milliseconds since the Unix epoch.
	Milliseconds Unit = iota
	// Seconds since the Unix epoch.
	Seconds
)

// Classification is a single registry entry: the kind of a field plus the
// epoch unit when the kind is IntEpochTimestamp.
type Classification struct {
	Kind Kind
	Unit Unit
}

// Registry is the immutable, exchange-scoped field classification table.
// It is built once at startup and read concurrently without coordination.
type Registry struct {
	exchange      string
	fields        map[string]Classification
	timestampKeys map[string]struct{}
}

// Exchange returns the exchange identifier this registry is scoped to.
func (r *Registry) Exchange() string {
	return r.exchange
}

// Lookup returns the classification of a field. Unclassified fields
// report Passthrough.
func (r *Registry) Lookup(field string) Classification {
	if c, ok := r.fields[field]; ok {
		return c
	}
	return Classification{Kind: Passthrough}
}

// IsTimestampKey reports whether an outbound parameter name belongs to the
// exchange's timestamp-key set and must be converted to epoch milliseconds
// before signing.
func (r *Registry) IsTimestampKey(key string) bool {
	_, ok := r.timestampKeys[key]
	return ok
}

// TimestampKeys returns the outbound timestamp-key set.
func (r *Registry) TimestampKeys() map[string]struct{} {
	out := make(map[string]struct{}, len(r.timestampKeys))
	for k := range r.timestampKeys {
		out[k] = struct{}{}
	}
	return out
}

// Builder assembles a Registry while enforcing the disjointness invariant:
// a field name maps to exactly one kind within one exchange. Conflicting
// entries fail at build time, before any response is processed.
type Builder struct {
	exchange      string
	fields        map[string]Classification
	timestampKeys map[string]struct{}
	conflicts     []string
}

// NewBuilder creates a registry builder scoped to the given exchange.
func NewBuilder(exchange string) *Builder {
	return &Builder{
		exchange:      exchange,
		fields:        make(map[string]Classification),
		timestampKeys: make(map[string]struct{}),
	}
}

func (b *Builder) add(c Classification, names []string) *Builder {
	for _, name := range names {
		if existing, ok := b.fields[name]; ok && existing != c {
			b.conflicts = append(b.conflicts, name)
			continue
		}
		b.fields[name] = c
	}
	return b
}

// IntEpoch classifies fields as integer epoch-millisecond timestamps.
func (b *Builder) IntEpoch(names ...string) *Builder {
	return b.add(Classification{Kind: IntEpochTimestamp, Unit: Milliseconds}, names)
}

// IntEpochSeconds classifies fields as integer epoch-second timestamps.
func (b *Builder) IntEpochSeconds(names ...string) *Builder {
	return b.add(Classification{Kind: IntEpochTimestamp, Unit: Seconds}, names)
}

// StringTime classifies fields as ISO-like string timestamps.
func (b *Builder) StringTime(names ...string) *Builder {
	return b.add(Classification{Kind: StringTimestamp}, names)
}

// Numeric classifies fields as numerics transmitted as strings.
func (b *Builder) Numeric(names ...string) *Builder {
	return b.add(Classification{Kind: NumericString}, names)
}

// Boolean classifies fields as booleans transmitted as string tokens.
func (b *Builder) Boolean(names ...string) *Builder {
	return b.add(Classification{Kind: BooleanString}, names)
}

// TimestampKeys registers outbound parameter names whose timestamp values
// must be converted to epoch milliseconds before signing.
func (b *Builder) TimestampKeys(names ...string) *Builder {
	for _, name := range names {
		b.timestampKeys[name] = struct{}{}
	}
	return b
}

// Build finalizes the registry. Any field classified under more than one
// kind yields a ConfigError.
func (b *Builder) Build() (*Registry, error) {
	if len(b.conflicts) > 0 {
		return nil, core.NewConfigError(b.exchange,
			"fields classified under multiple kinds: %v", b.conflicts)
	}
	return &Registry{
		exchange:      b.exchange,
		fields:        b.fields,
		timestampKeys: b.timestampKeys,
	}, nil
}

// MustBuild finalizes the registry and panics on a configuration error.
// Static per-exchange tables use it at package initialization, where a
// disjointness violation must stop the process.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
