package classify

// bybitRegistry is the Bybit v5 field classification table. Bybit
// transmits nearly every numeric as a string, including fields such as
// "timestamp" that other exchanges send as integers, so its table differs
// substantially from the Binance one.
var bybitRegistry = NewBuilder("bybit").
	IntEpoch(
		"creationTimestamp",
		"fundingRateTimestamp",
		"deliveryTime",
		"nextFundingTime",
		"timestamp",
		"ts",
	).
	Numeric(
		"accountIMRate",
		"accountLTV",
		"accountMMRate",
		"accruedInterest",
		"ask1Price",
		"ask1Size",
		"availableToBorrow",
		"availableToWithdraw",
		"basis",
		"basisRate",
		"bid1Price",
		"bid1Size",
		"bonus",
		"borrowAmount",
		"cumRealisedPnl",
		"deliveryFeeRate",
		"equity",
		"fundingRate",
		"highPrice24h",
		"indexPrice",
		"lastPrice",
		"locked",
		"lowPrice24h",
		"markPrice",
		"openInterest",
		"openInterestValue",
		"predictedDeliveryPrice",
		"prevPrice1h",
		"prevPrice24h",
		"price",
		"price24hPcnt",
		"qty",
		"sequenceId",
		"size",
		"spotHedgingQty",
		"totalAvailableBalance",
		"totalEquity",
		"totalInitialMargin",
		"totalMaintenanceMargin",
		"totalMarginBalance",
		"totalOrderIM",
		"totalPerpUPL",
		"totalPositionIM",
		"totalPositionMM",
		"totalWalletBalance",
		"turnover24h",
		"unrealisedPnl",
		"usdValue",
		"volume24h",
		"walletBalance",
	).
	Boolean(
		"collateralSwitch",
		"marginCollateral",
	).
	TimestampKeys(
		"beginTime",
		"endTime",
		"startTime",
		"subscriptionStartTime",
	).
	MustBuild()

// Bybit returns the Bybit classification registry.
func Bybit() *Registry {
	return bybitRegistry
}
