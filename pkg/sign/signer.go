// Package sign canonicalizes request parameter sets and computes
// exchange-specific message-authentication signatures over them. The
// canonical encoding (ordering, escaping), hash algorithm, signature
// encoding, and freshness placement are per-exchange configuration, not
// code paths.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"nakula/pkg/coerce"
	"nakula/pkg/core"
)

// Hash selects the HMAC hash algorithm.
type Hash int

// Hash constants.
const (
	// HashSHA256 selects HMAC-SHA256.
	HashSHA256 Hash = iota
	// HashSHA512 selects HMAC-SHA512.
	HashSHA512
)

// Encoding selects the signature output encoding.
type Encoding int

// Encoding constants.
const (
	// EncodeHex renders the signature as lowercase hex.
	EncodeHex Encoding = iota
	// EncodeBase64 renders the signature as standard base64.
	EncodeBase64
)

// Ordering selects the canonical parameter ordering rule.
type Ordering int

// Ordering constants.
const (
	// OrderCaller preserves the caller-supplied key order. Used by
	// exchanges whose signatures are order-sensitive.
	OrderCaller Ordering = iota
	// OrderAlphabetical sorts keys, for exchanges that require a
	// canonical ordering.
	OrderAlphabetical
)

// Config declares an exchange's signing protocol.
type Config struct {
	// Exchange identifies the protocol owner.
	Exchange string
	// Hash is the HMAC hash algorithm.
	Hash Hash
	// Encoding is the signature output encoding.
	Encoding Encoding
	// Ordering is the canonical parameter ordering rule.
	Ordering Ordering
	// EscapeQuery percent-encodes keys and values in the canonical string.
	EscapeQuery bool
	// TimestampKeys is the outbound timestamp-key set; timestamp values
	// under these keys are converted to epoch milliseconds before
	// encoding.
	TimestampKeys map[string]struct{}
	// TimestampKey and RecvWindowKey name the freshness pair. They are
	// always injected by the preparer, never accepted from the caller.
	TimestampKey  string
	RecvWindowKey string
	// RecvWindow is the request validity window in milliseconds.
	RecvWindow int64
	// SignatureKey, when set, appends the signature to the canonical
	// query under this name. When empty the signature travels in headers
	// only and the freshness pair rides the headers instead of the query.
	SignatureKey string
	// APIKeyHeader carries the public API key.
	APIKeyHeader string
	// Compose, when set, builds the signed message from the timestamp,
	// credentials, receive window, and canonical query. When nil the
	// canonical query itself is signed.
	Compose func(ts int64, creds core.Credentials, recvWindow int64, canonical string) string
	// Headers, when set, contributes signature-carrying headers.
	Headers func(creds core.Credentials, ts int64, recvWindow int64, signature string) map[string]string
}

// SignedRequest is the outcome of preparing and signing a parameter set:
// the canonical query string (signature included for query-style
// exchanges), the signature itself, the timestamp that was signed, and
// the header map carrying the API key. The secret never appears in any
// field.
type SignedRequest struct {
	Query     string
	Signature string
	Timestamp int64
	Headers   map[string]string
}

// Signer canonicalizes and signs parameter sets for one exchange. It is
// stateless apart from its clock and safe for concurrent use; concurrent
// calls read independent timestamps and need no coordination.
type Signer struct {
	cfg Config
	now func() time.Time
}

// New creates a Signer from the given protocol configuration. Missing
// freshness key names default to "timestamp" and "recvWindow"; a missing
// receive window defaults to 5000 ms.
func New(cfg Config) (*Signer, error) {
	if cfg.Exchange == "" {
		return nil, core.NewConfigError("sign", "signer requires an exchange name")
	}
	if cfg.TimestampKey == "" {
		cfg.TimestampKey = "timestamp"
	}
	if cfg.RecvWindowKey == "" {
		cfg.RecvWindowKey = "recvWindow"
	}
	if cfg.RecvWindow <= 0 {
		cfg.RecvWindow = 5000
	}
	return &Signer{cfg: cfg, now: time.Now}, nil
}

// MustNew creates a Signer and panics on a configuration error.
func MustNew(cfg Config) *Signer {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// WithClock returns a copy of the signer reading time from fn. Tests use
// a fixed clock to make signatures reproducible.
func (s *Signer) WithClock(fn func() time.Time) *Signer {
	return &Signer{cfg: s.cfg, now: fn}
}

// WithRecvWindow returns a copy of the signer using the given receive
// window in milliseconds.
func (s *Signer) WithRecvWindow(ms int64) *Signer {
	cfg := s.cfg
	cfg.RecvWindow = ms
	return &Signer{cfg: cfg, now: s.now}
}

// Exchange returns the exchange this signer is configured for.
func (s *Signer) Exchange() string {
	return s.cfg.Exchange
}

// PrepareAndSign canonicalizes the parameter set and signs it: outbound
// timestamp coercion, nil-value removal, freshness injection (the clock
// is read exactly once per call), canonical encoding, and HMAC signing.
// A nil params is treated as empty.
func (s *Signer) PrepareAndSign(creds core.Credentials, params *core.Params) (*SignedRequest, error) {
	if creds.SecretKey == "" {
		return nil, core.ErrNoSecret
	}

	if params == nil {
		params = core.NewParams()
	}
	p := coerce.Outbound(params, s.cfg.TimestampKeys)
	p.Delete(s.cfg.TimestampKey)
	p.Delete(s.cfg.RecvWindowKey)
	p.DropNil()

	ts := s.now().UnixMilli()

	queryStyle := s.cfg.SignatureKey != ""
	if queryStyle {
		p.Set(s.cfg.RecvWindowKey, core.NumberFromInt(s.cfg.RecvWindow))
		p.Set(s.cfg.TimestampKey, core.NumberFromInt(ts))
	}

	canonical := s.encode(p)

	message := canonical
	if s.cfg.Compose != nil {
		message = s.cfg.Compose(ts, creds, s.cfg.RecvWindow, canonical)
	}
	signature := s.Sign(creds.SecretKey, message)

	query := canonical
	if queryStyle {
		pair := s.cfg.SignatureKey + "=" + signature
		if query == "" {
			query = pair
		} else {
			query += "&" + pair
		}
	}

	headers := make(map[string]string)
	if s.cfg.APIKeyHeader != "" {
		headers[s.cfg.APIKeyHeader] = creds.APIKey
	}
	if s.cfg.Headers != nil {
		for k, v := range s.cfg.Headers(creds, ts, s.cfg.RecvWindow, signature) {
			headers[k] = v
		}
	}

	return &SignedRequest{
		Query:     query,
		Signature: signature,
		Timestamp: ts,
		Headers:   headers,
	}, nil
}

// encode serializes the parameter set into the exchange's canonical
// key=value form.
func (s *Signer) encode(p *core.Params) string {
	keys := p.Keys()
	if s.cfg.Ordering == OrderAlphabetical {
		sort.Strings(keys)
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		key, val := k, v.Text()
		if s.cfg.EscapeQuery {
			key = url.QueryEscape(key)
			val = url.QueryEscape(val)
		}
		parts = append(parts, key+"="+val)
	}
	return strings.Join(parts, "&")
}

// Sign computes the configured HMAC over message and renders it in the
// configured encoding.
func (s *Signer) Sign(secret, message string) string {
	var newHash func() hash.Hash
	switch s.cfg.Hash {
	case HashSHA512:
		newHash = sha512.New
	default:
		newHash = sha256.New
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(message))
	sum := mac.Sum(nil)
	if s.cfg.Encoding == EncodeBase64 {
		return base64.StdEncoding.EncodeToString(sum)
	}
	return hex.EncodeToString(sum)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FixedClock returns a clock function pinned to t, for reproducible
// signatures in tests and replay tooling.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
