package sign

import (
	"nakula/pkg/classify"
	"nakula/pkg/core"
)

// Bybit returns the Bybit v5 signer. The signed message is the
// concatenation timestamp + apiKey + recvWindow + canonical query, with
// the query in caller-supplied order and unescaped. The signature and
// freshness pair travel in X-BAPI-* headers, not in the query.
func Bybit() *Signer {
	return MustNew(Config{
		Exchange:      "bybit",
		Hash:          HashSHA256,
		Encoding:      EncodeHex,
		Ordering:      OrderCaller,
		TimestampKeys: classify.Bybit().TimestampKeys(),
		APIKeyHeader:  "X-BAPI-API-KEY",
		Compose: func(ts int64, creds core.Credentials, recvWindow int64, canonical string) string {
			return formatInt(ts) + creds.APIKey + formatInt(recvWindow) + canonical
		},
		Headers: func(creds core.Credentials, ts int64, recvWindow int64, signature string) map[string]string {
			return map[string]string{
				"X-BAPI-SIGN":        signature,
				"X-BAPI-SIGN-TYPE":   "2",
				"X-BAPI-TIMESTAMP":   formatInt(ts),
				"X-BAPI-RECV-WINDOW": formatInt(recvWindow),
			}
		},
	})
}
