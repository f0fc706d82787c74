package sign

import (
	"strconv"

	"nakula/pkg/core"
)

// OKX returns the OKX v5 signer: HMAC-SHA256, base64-encoded. OKX signs
// the request payload (timestamp + method + path + body) rather than a
// query string, so callers use SignPayload instead of PrepareAndSign.
func OKX() *Signer {
	return MustNew(Config{
		Exchange: "okx",
		Hash:     HashSHA256,
		Encoding: EncodeBase64,
		Ordering: OrderCaller,
	})
}

// SignPayload signs an OKX-style request payload and returns the headers
// carrying the API key, signature, timestamp, and passphrase. The body is
// the serialized request body, empty for GET requests. The clock is read
// once; the timestamp in the signed message and the emitted header are
// identical.
func (s *Signer) SignPayload(creds core.Credentials, method, path, body string) (map[string]string, error) {
	if creds.SecretKey == "" {
		return nil, core.ErrNoSecret
	}

	now := s.now()
	ts := strconv.FormatFloat(float64(now.UnixMilli())/1000, 'f', 3, 64)
	signature := s.Sign(creds.SecretKey, ts+method+path+body)

	return map[string]string{
		"OK-ACCESS-KEY":        creds.APIKey,
		"OK-ACCESS-SIGN":       signature,
		"OK-ACCESS-TIMESTAMP":  ts,
		"OK-ACCESS-PASSPHRASE": creds.Passphrase,
	}, nil
}
