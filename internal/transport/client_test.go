package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", DefaultConfig("https://api.binance.com"), false},
		{"missing base url", Config{Timeout: time.Second, RequestsPerSecond: 1, Burst: 1}, true},
		{"not a url", Config{BaseURL: "::bad::", Timeout: time.Second, RequestsPerSecond: 1, Burst: 1}, true},
		{"zero rate", Config{BaseURL: "https://api.binance.com", Timeout: time.Second, Burst: 1}, true},
		{"zero burst", Config{BaseURL: "https://api.binance.com", Timeout: time.Second, RequestsPerSecond: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, c.Close())
		})
	}
}

func TestClient_Do(t *testing.T) {
	var gotQuery, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Get("X-MBX-APIKEY")
		w.Header().Set("X-MBX-USED-WEIGHT-1M", "12")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"serverTime":1700000000000}`))
	}))
	defer srv.Close()

	c, err := NewClient(DefaultConfig(srv.URL), zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Do(context.Background(), http.MethodGet, "/api/v3/time",
		"symbol=BTCUSDT&signature=abc", map[string]string{"X-MBX-APIKEY": "key"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []byte(`{"serverTime":1700000000000}`), resp.Body)
	assert.Equal(t, 12, resp.Usage.UsedWeight)
	assert.Equal(t, "symbol=BTCUSDT&signature=abc", gotQuery)
	assert.Equal(t, "key", gotHeader)
}

func TestClient_Do_ContextCancelled(t *testing.T) {
	c, err := NewClient(Config{
		BaseURL:           "https://api.binance.com",
		Timeout:           time.Second,
		RequestsPerSecond: 1,
		Burst:             1,
	}, zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// First token is available immediately; exhaust it, then the
	// cancelled context must abort the wait for the next one.
	_, _ = c.Do(ctx, http.MethodGet, "/", "", nil)
	_, err = c.Do(ctx, http.MethodGet, "/", "", nil)
	assert.Error(t, err)
}
