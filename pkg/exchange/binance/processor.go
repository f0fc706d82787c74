package binance

import (
	"nakula/pkg/classify"
	"nakula/pkg/core"
	"nakula/pkg/exchange"
	"nakula/pkg/normalize"
	"nakula/pkg/orderschema"
	"nakula/pkg/sign"
)

// New creates the Binance adapter.
func New(opts ...exchange.Option) *exchange.Adapter {
	return exchange.NewAdapter(
		"binance",
		classify.Binance(),
		orderschema.Binance(),
		sign.Binance(),
		opts...,
	)
}

// klineColumns names the positional elements of a Binance kline array.
var klineColumns = []string{
	"openTime",
	"open",
	"high",
	"low",
	"close",
	"volume",
	"closeTime",
	"quoteAssetVolume",
	"numberOfTrades",
	"takerBuyBaseAssetVolume",
	"takerBuyQuoteAssetVolume",
	"ignore",
}

// accountMeta are the account-level fields broadcast onto every balance row.
var accountMeta = []string{
	"makerCommission",
	"takerCommission",
	"buyerCommission",
	"sellerCommission",
	"canTrade",
	"canWithdraw",
	"canDeposit",
	"updateTime",
}

// AccountToTable flattens a GET /api/v3/account response: one row per
// balance entry, with the account-level commission and permission fields
// repeated onto every row.
func AccountToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	return a.Flatten(raw, normalize.Options{
		RecordPath: "balances",
		MetaFields: accountMeta,
	})
}

// KlinesToTable flattens a GET /api/v3/klines response. Klines arrive as
// positional arrays; the elements are named via the kline column table.
func KlinesToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	t, err := a.Flatten(raw, normalize.Options{
		RecordColumns: klineColumns,
	})
	if err != nil {
		return nil, err
	}
	t.DropColumn("ignore")
	return t, nil
}

// DepthToTable flattens a GET /api/v3/depth response into one row per
// price level, with a "side" column distinguishing bids from asks and the
// book's lastUpdateId repeated onto every row.
func DepthToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	sides := make([]*core.Table, 0, 2)
	for _, side := range []string{"bids", "asks"} {
		t, err := a.Flatten(raw, normalize.Options{
			RecordPath:    side,
			MetaFields:    []string{"lastUpdateId"},
			RecordColumns: []string{"price", "qty"},
		})
		if err != nil {
			return nil, err
		}
		if err := t.AddColumn("side", core.Repeat(core.String(side), t.NumRows())); err != nil {
			return nil, err
		}
		sides = append(sides, t)
	}
	return core.Concat(sides...)
}

// orderMeta are the order-level fields broadcast onto every fill row of a
// FULL order response.
var orderMeta = []string{
	"symbol",
	"orderId",
	"clientOrderId",
	"transactTime",
	"price",
	"origQty",
	"executedQty",
	"status",
	"timeInForce",
	"type",
	"side",
}

// OrderToTable flattens a POST /api/v3/order FULL response: one row per
// fill, fill columns prefixed "fills." so they cannot collide with the
// order-level fields repeated onto every row. Orders without fills yield
// a single-row table of the order fields.
func OrderToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	t, err := a.Flatten(raw, normalize.Options{
		RecordPath:   "fills",
		MetaFields:   orderMeta,
		RecordPrefix: "fills.",
	})
	if err != nil {
		return nil, err
	}
	if t.NumRows() > 0 {
		return t, nil
	}
	// No fills: the order fields themselves are the single record.
	t, err = a.Flatten(raw, normalize.Options{})
	if err != nil {
		return nil, err
	}
	t.DropColumn("fills")
	return t, nil
}

// ExchangeInfoToTable flattens a GET /api/v3/exchangeInfo response: one
// row per symbol, with the venue-level fields repeated onto every row.
func ExchangeInfoToTable(a *exchange.Adapter, raw core.Value) (*core.Table, error) {
	return a.Flatten(raw, normalize.Options{
		RecordPath: "symbols",
		MetaFields: []string{"timezone", "serverTime"},
	})
}
