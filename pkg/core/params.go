package core

import "time"

// Credentials holds API authentication credentials for an exchange.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"api_key"`
	// SecretKey is the private API key used for signing requests.
	// It is never logged and never leaves the signing path.
	SecretKey string `json:"secret_key"`
	// Passphrase is an optional additional credential required by some exchanges.
	Passphrase string `json:"passphrase,omitempty"`
}

// Params is an ordered mapping of request parameter names to values.
// Insertion order is preserved so exchanges with order-sensitive
// signatures sign exactly what the caller built.
type Params struct {
	m *Mapping
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{m: NewMapping()}
}

// Set stores a Go value under key, converting it to a tagged Value.
// Supported types: string, bool, int, int64, float64, time.Time, Value,
// and nil. Setting an existing key keeps its original position.
func (p *Params) Set(key string, v any) *Params {
	p.m.Set(key, toValue(v))
	return p
}

func toValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil()
	case Value:
		return val
	case time.Time:
		return Time(val)
	default:
		return FromJSON(v)
	}
}

// Get retrieves the value stored under key.
func (p *Params) Get(key string) (Value, bool) {
	return p.m.Get(key)
}

// Delete removes key from the parameter set.
func (p *Params) Delete(key string) {
	p.m.Delete(key)
}

// Keys returns the parameter names in insertion order.
func (p *Params) Keys() []string {
	return p.m.Keys()
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return p.m.Len()
}

// Clone returns an independent copy of the parameter set.
func (p *Params) Clone() *Params {
	return &Params{m: p.m.Clone()}
}

// DropNil removes every entry holding a nil value. Absent values never
// participate in canonical encoding or signing.
func (p *Params) DropNil() *Params {
	for _, k := range p.m.Keys() {
		if v, ok := p.m.Get(k); ok && v.IsNil() {
			p.m.Delete(k)
		}
	}
	return p
}
