package bybit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/pkg/core"
	"nakula/pkg/normalize"
)

func decode(t *testing.T, payload string) core.Value {
	t.Helper()
	v, err := normalize.DecodeJSON([]byte(payload))
	require.NoError(t, err)
	return v
}

func TestWalletBalanceToTable(t *testing.T) {
	raw := decode(t, `{
		"retCode": 0,
		"retMsg": "OK",
		"result": {
			"list": [{
				"accountType": "UNIFIED",
				"totalEquity": "18070.32",
				"totalWalletBalance": "18006.16",
				"coin": [
					{"coin": "BTC", "equity": "1.02", "walletBalance": "1.02", "usdValue": "44904.56"},
					{"coin": "USDT", "equity": "5000", "walletBalance": "5000", "usdValue": "5000"}
				]
			}]
		}
	}`)

	tbl, err := WalletBalanceToTable(New(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())

	v, _ := tbl.Cell("walletBalance", 0)
	d, ok := v.Num()
	require.True(t, ok)
	assert.Equal(t, "1.02", d.Text('f'))

	// Account totals repeat onto every coin row.
	v, _ = tbl.Cell("totalEquity", 1)
	d, ok = v.Num()
	require.True(t, ok)
	assert.Equal(t, "18070.32", d.Text('f'))

	v, _ = tbl.Cell("accountType", 0)
	assert.True(t, v.Equal(core.String("UNIFIED")))
}

func TestWalletBalanceToTable_MultipleAccounts(t *testing.T) {
	raw := decode(t, `{
		"result": {
			"list": [
				{"accountType": "UNIFIED", "coin": [{"coin": "BTC", "walletBalance": "1"}]},
				{"accountType": "CONTRACT", "coin": [{"coin": "ETH", "walletBalance": "2"}]}
			]
		}
	}`)

	tbl, err := WalletBalanceToTable(New(), raw)
	require.NoError(t, err)

	require.Equal(t, 2, tbl.NumRows())
	v, _ := tbl.Cell("accountType", 1)
	assert.True(t, v.Equal(core.String("CONTRACT")))
}

func TestWalletBalanceToTable_BadEnvelope(t *testing.T) {
	_, err := WalletBalanceToTable(New(), decode(t, `{"retCode": 0}`))
	assert.Error(t, err)

	_, err = WalletBalanceToTable(New(), decode(t, `[1,2]`))
	assert.Error(t, err)
}

func TestTickersToTable(t *testing.T) {
	raw := decode(t, `{
		"retCode": 0,
		"result": {
			"category": "spot",
			"list": [
				{"symbol": "BTCUSDT", "lastPrice": "50000.5", "volume24h": "1234.5"},
				{"symbol": "ETHUSDT", "lastPrice": "3000.1", "volume24h": "9876.5"}
			]
		}
	}`)

	tbl, err := TickersToTable(New(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())

	v, _ := tbl.Cell("lastPrice", 0)
	d, ok := v.Num()
	require.True(t, ok)
	assert.Equal(t, "50000.5", d.Text('f'))

	v, _ = tbl.Cell("category", 1)
	assert.True(t, v.Equal(core.String("spot")))
}

func TestOrderbookToTable(t *testing.T) {
	raw := decode(t, `{
		"result": {
			"s": "BTCUSDT",
			"b": [["50000.00", "1.5"], ["49999.00", "2.0"]],
			"a": [["50001.00", "0.8"]],
			"ts": 1700000000000,
			"u": 18521288
		}
	}`)

	tbl, err := OrderbookToTable(New(), raw)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"price", "size", "s", "ts", "u", "side"}, tbl.Columns())

	v, _ := tbl.Cell("side", 0)
	assert.True(t, v.Equal(core.String("bid")))
	v, _ = tbl.Cell("side", 2)
	assert.True(t, v.Equal(core.String("ask")))

	v, _ = tbl.Cell("ts", 1)
	ts, ok := v.TimeVal()
	require.True(t, ok)
	assert.True(t, ts.Equal(time.UnixMilli(1700000000000)))

	v, _ = tbl.Cell("size", 1)
	d, ok := v.Num()
	require.True(t, ok)
	assert.Equal(t, "2.0", d.Text('f'))
}
