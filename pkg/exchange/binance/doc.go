// Package binance provides the Binance adapter: the spot classification
// registry, order schema, HMAC-SHA256 query signer, and the per-endpoint
// flattening tables that turn Binance REST responses into typed tables.
package binance
