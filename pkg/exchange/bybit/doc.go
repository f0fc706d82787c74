// Package bybit provides the Bybit v5 adapter: the unified-account
// classification registry, batch-order schema, header-based HMAC signer,
// and the per-endpoint flattening tables for Bybit's result envelopes.
package bybit
