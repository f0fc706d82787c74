// Package exchange assembles the per-exchange configuration surface: a
// classification registry, an order schema, and a signing protocol bound
// together under one adapter. Adding a new exchange means registering a
// new registry/schema/signer triple, not new pipeline logic.
package exchange

import (
	"github.com/rs/zerolog"

	"nakula/pkg/classify"
	"nakula/pkg/coerce"
	"nakula/pkg/core"
	"nakula/pkg/normalize"
	"nakula/pkg/orderschema"
	"nakula/pkg/sign"
)

// Adapter binds an exchange's classification registry, order schema, and
// signer. Adapters are immutable after construction and safe for
// concurrent use by many request-dispatching goroutines.
type Adapter struct {
	name     string
	registry *classify.Registry
	schema   *orderschema.Schema
	signer   *sign.Signer
	logger   zerolog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger attaches a logger to the adapter. The default is a no-op
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an adapter for the named exchange.
func NewAdapter(name string, registry *classify.Registry, schema *orderschema.Schema, signer *sign.Signer, opts ...Option) *Adapter {
	a := &Adapter{
		name:     name,
		registry: registry,
		schema:   schema,
		signer:   signer,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the exchange identifier.
func (a *Adapter) Name() string {
	return a.name
}

// Registry returns the exchange's classification registry.
func (a *Adapter) Registry() *classify.Registry {
	return a.registry
}

// Schema returns the exchange's order schema.
func (a *Adapter) Schema() *orderschema.Schema {
	return a.schema
}

// Signer returns the exchange's request signer.
func (a *Adapter) Signer() *sign.Signer {
	return a.signer
}

// Flatten normalizes a nested response graph into a flat table and
// coerces every classified column to its canonical type.
func (a *Adapter) Flatten(raw core.Value, opts normalize.Options) (*core.Table, error) {
	t, err := normalize.Flatten(raw, opts)
	if err != nil {
		return nil, err
	}
	typed, err := coerce.Inbound(t, a.registry)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("exchange", a.name).
		Str("record_path", opts.RecordPath).
		Int("rows", typed.NumRows()).
		Int("columns", typed.NumColumns()).
		Msg("response flattened")
	return typed, nil
}

// PrepareOrders validates an order table against the exchange schema and
// serializes it into one parameter set per order, ready for signing.
// Validation failures surface here, before anything reaches the signer.
func (a *Adapter) PrepareOrders(orders *core.Table) ([]*core.Params, error) {
	validated, err := a.schema.Validate(orders)
	if err != nil {
		return nil, err
	}
	return a.schema.Records(validated), nil
}

// Sign canonicalizes and signs a parameter set with the exchange's
// protocol.
func (a *Adapter) Sign(creds core.Credentials, params *core.Params) (*sign.SignedRequest, error) {
	return a.signer.PrepareAndSign(creds, params)
}
