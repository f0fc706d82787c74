package classify

// binanceRegistry is the Binance field classification table. Field names
// follow the REST API response shapes for spot account, market data, and
// futures position endpoints.
var binanceRegistry = NewBuilder("binance").
	IntEpoch(
		"closeTime",
		"fundingTime",
		"openTime",
		"serverTime",
		"time",
		"timestamp",
		"transactTime",
		"transferDate",
		"updateTime",
		"workingTime",
	).
	StringTime(
		"datetime",
	).
	Numeric(
		"askPrice",
		"askQty",
		"bidPrice",
		"bidQty",
		"close",
		"free",
		"freeze",
		"fundingRate",
		"high",
		"highPrice",
		"lastPrice",
		"lastQty",
		"locked",
		"low",
		"lowPrice",
		"markPrice",
		"open",
		"openPrice",
		"prevClosePrice",
		"price",
		"priceChange",
		"priceChangePercent",
		"qty",
		"quantity",
		"quoteAssetVolume",
		"quoteQty",
		"quoteVolume",
		"takerBuyBaseAssetVolume",
		"takerBuyQuoteAssetVolume",
		"volume",
		"weightedAvgPrice",
		"withdrawing",
	).
	Boolean(
		"isAutoAddMargin",
		"priceProtect",
	).
	TimestampKeys(
		"beginTime",
		"endTime",
		"goodTillDate",
		"startTime",
		"subscriptionStartTime",
		"transferDate",
	).
	MustBuild()

// Binance returns the Binance classification registry.
func Binance() *Registry {
	return binanceRegistry
}
