package bybit

import (
	"fmt"

	"nakula/pkg/classify"
	"nakula/pkg/core"
	"nakula/pkg/exchange"
	"nakula/pkg/normalize"
	"nakula/pkg/orderschema"
	"nakula/pkg/sign"
)

// New creates the Bybit adapter.
func New(opts ...exchange.Option) *exchange.Adapter {
	return exchange.NewAdapter(
		"bybit",
		classify.Bybit(),
		orderschema.Bybit(),
		sign.Bybit(),
		opts...,
	)
}

// walletMeta are the account-level totals broadcast onto every coin row
// of a wallet balance response.
var walletMeta = []string{
	"accountType",
	"accountIMRate",
	"accountMMRate",
	"accountLTV",
	"totalEquity",
	"totalMarginBalance",
	"totalInitialMargin",
	"totalMaintenanceMargin",
	"totalAvailableBalance",
	"totalWalletBalance",
	"totalPerpUPL",
}

// result unwraps Bybit's {retCode, retMsg, result: {...}} envelope.
func result(raw core.Value) (*core.Mapping, error) {
	m, ok := raw.MapVal()
	if !ok {
		return nil, fmt.Errorf("bybit response is %s, want mapping", raw.Kind())
	}
	res, ok := m.Get("result")
	if !ok {
		return nil, fmt.Errorf("bybit response has no result field")
	}
	rm, ok := res.MapVal()
	if !ok {
		return nil, fmt.Errorf("bybit result is %s, want mapping", res.Kind())
	}
	return rm, nil
}

// WalletBalanceToTable flattens a GET /v5/account/wallet-balance
// response: one row per coin holding, with the account-level totals of
// its owning account repeated onto every row. Unified accounts may report
// several account entries; their coin rows are concatenated.
func WalletBalanceToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	rm, err := result(raw)
	if err != nil {
		return nil, err
	}

	listVal, ok := rm.Get("list")
	if !ok {
		return nil, fmt.Errorf("bybit wallet balance has no list field")
	}
	accounts, ok := listVal.SeqVal()
	if !ok {
		return nil, fmt.Errorf("bybit wallet balance list is %s, want sequence", listVal.Kind())
	}

	tables := make([]*core.Table, 0, len(accounts))
	for _, account := range accounts {
		t, err := a.Flatten(account, normalize.Options{
			RecordPath: "coin",
			MetaFields: walletMeta,
		})
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return core.NewTable(), nil
	}
	return core.Concat(tables...)
}

// TickersToTable flattens a GET /v5/market/tickers response: one row per
// instrument, with the request category repeated onto every row.
func TickersToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	rm, err := result(raw)
	if err != nil {
		return nil, err
	}
	return a.Flatten(core.Map(rm), normalize.Options{
		RecordPath: "list",
		MetaFields: []string{"category"},
	})
}

// OrderbookToTable flattens a GET /v5/market/orderbook response: one row
// per level with a "side" column, and the symbol, timestamp, and update
// id repeated onto every row. Bybit abbreviates the level arrays to "b"
// and "a" on the wire.
func OrderbookToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	rm, err := result(raw)
	if err != nil {
		return nil, err
	}

	sides := make([]*core.Table, 0, 2)
	for _, lvl := range []struct{ wire, side string }{{"b", "bid"}, {"a", "ask"}} {
		t, err := a.Flatten(core.Map(rm), normalize.Options{
			RecordPath:    lvl.wire,
			MetaFields:    []string{"s", "ts", "u"},
			RecordColumns: []string{"price", "size"},
		})
		if err != nil {
			return nil, err
		}
		if err := t.AddColumn("side", core.Repeat(core.String(lvl.side), t.NumRows())); err != nil {
			return nil, err
		}
		sides = append(sides, t)
	}
	return core.Concat(sides...)
}
