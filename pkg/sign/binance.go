package sign

import "nakula/pkg/classify"

// Binance returns the Binance signer: HMAC-SHA256 over the
// percent-encoded, alphabetically ordered query string, hex signature
// appended as the "signature" parameter, API key in the X-MBX-APIKEY
// header. The freshness pair travels in the query and is part of the
// signed string.
func Binance() *Signer {
	return MustNew(Config{
		Exchange:      "binance",
		Hash:          HashSHA256,
		Encoding:      EncodeHex,
		Ordering:      OrderAlphabetical,
		EscapeQuery:   true,
		TimestampKeys: classify.Binance().TimestampKeys(),
		SignatureKey:  "signature",
		APIKeyHeader:  "X-MBX-APIKEY",
	})
}
