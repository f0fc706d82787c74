package orderschema

import "nakula/pkg/core"

// Bybit v5 renames the shared order fields on the wire: orderType for
// type, qty for quantity, orderLinkId for clientOrderId, and capitalized
// side values. Little of the base survives the renaming, so the schema is
// declared directly instead of extending the base names.
var bybitSchema = MustNew("bybit",
	Field{Name: "category", Required: true, Type: TypeString, Allowed: []string{
		"spot", "linear", "inverse", "option",
	}},
	Field{Name: "symbol", Required: true, Type: TypeString},
	Field{Name: "side", Required: true, Type: TypeString, Allowed: []string{"Buy", "Sell"}},
	Field{Name: "orderType", Required: true, Type: TypeString, Allowed: []string{"Limit", "Market"}},
	Field{Name: "qty", Required: true, Type: TypeNumber, Min: dec("0"), ExclusiveMin: true},
	Field{Name: "price", Type: TypeNumber, Min: dec("0"), Nullable: true},
	Field{Name: "timeInForce", Type: TypeString, Allowed: []string{"GTC", "IOC", "FOK", "PostOnly"}, Nullable: true},
	Field{Name: "isLeverage", Type: TypeNumber, Allowed: []string{"0", "1"}, Nullable: true,
		Default: value(core.NumberFromInt(0))},
	Field{Name: "orderLinkId", Type: TypeString, Nullable: true},
	Field{Name: "triggerPrice", Type: TypeNumber, Min: dec("0"), Nullable: true},
)

// Bybit returns the Bybit v5 batch-order schema.
func Bybit() *Schema {
	return bybitSchema
}
