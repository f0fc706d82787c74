package orderschema

// Base returns the exchange-neutral order schema: the constraints every
// venue shares. Exchange schemas extend it with their accepted field
// subsets and wire-specific allowed values rather than inheriting from it.
func Base() *Schema {
	return MustNew("base",
		Field{Name: "symbol", Required: true, Type: TypeString},
		Field{Name: "side", Required: true, Type: TypeString, Allowed: []string{"BUY", "SELL"}},
		Field{Name: "type", Required: true, Type: TypeString, Allowed: []string{"LIMIT", "MARKET"}},
		Field{Name: "quantity", Required: true, Type: TypeNumber, Min: dec("0"), ExclusiveMin: true},
		Field{Name: "price", Type: TypeNumber, Min: dec("0"), Nullable: true},
		Field{Name: "clientOrderId", Type: TypeString, Nullable: true},
	)
}
