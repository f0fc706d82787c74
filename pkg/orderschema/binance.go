package orderschema

var binanceSchema = Base().Extend("binance",
	Field{Name: "type", Required: true, Type: TypeString, Allowed: []string{
		"LIMIT",
		"MARKET",
		"STOP_LOSS",
		"STOP_LOSS_LIMIT",
		"TAKE_PROFIT",
		"TAKE_PROFIT_LIMIT",
		"LIMIT_MAKER",
	}},
	Field{Name: "timeInForce", Type: TypeString, Allowed: []string{"GTC", "IOC", "FOK", "GTD"}, Nullable: true},
	Field{Name: "newClientOrderId", Type: TypeString, Nullable: true},
	Field{Name: "newOrderRespType", Type: TypeString, Allowed: []string{"ACK", "RESULT", "FULL"}, Nullable: true},
	Field{Name: "stopPrice", Type: TypeNumber, Min: dec("0"), Nullable: true},
	Field{Name: "reduceOnly", Type: TypeBool, Nullable: true},
	Field{Name: "postOnly", Type: TypeBool, Nullable: true},
	Field{Name: "priceProtect", Type: TypeBool, Nullable: true},
	Field{Name: "goodTillDate", Type: TypeNumber, Nullable: true},
)

// Binance returns the Binance order schema: the base constraints plus the
// Binance accepted field subset and its extended order types.
func Binance() *Schema {
	return binanceSchema
}
