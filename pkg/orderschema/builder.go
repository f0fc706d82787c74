package orderschema

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"nakula/pkg/core"
)

// TableBuilder provides a fluent interface for assembling an order table
// row by row. It accumulates parse errors and reports them on Build.
//
// Example:
//
//	orders, err := orderschema.NewTableBuilder().
//	    Row().Set("symbol", "BTCUSDT").Set("side", "BUY").
//	    Set("type", "LIMIT").Quantity("0.001").Price("50000").
//	    Row().Set("symbol", "ETHUSDT").Set("side", "SELL").
//	    Set("type", "MARKET").Quantity("0.5").
//	    Build()
type TableBuilder struct {
	rows []*core.Mapping
	err  error
}

// NewTableBuilder creates an empty order table builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// Row starts a new order row.
func (b *TableBuilder) Row() *TableBuilder {
	if b.err != nil {
		return b
	}
	b.rows = append(b.rows, core.NewMapping())
	return b
}

func (b *TableBuilder) current() *core.Mapping {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, core.NewMapping())
	}
	return b.rows[len(b.rows)-1]
}

// Set stores a field on the current row, converting Go natives to tagged
// values.
func (b *TableBuilder) Set(field string, v any) *TableBuilder {
	if b.err != nil {
		return b
	}
	switch val := v.(type) {
	case core.Value:
		b.current().Set(field, val)
	default:
		b.current().Set(field, core.FromJSON(v))
	}
	return b
}

// Quantity sets the current row's quantity from a decimal string.
func (b *TableBuilder) Quantity(qty string) *TableBuilder {
	return b.decimal("quantity", qty)
}

// Price sets the current row's price from a decimal string.
func (b *TableBuilder) Price(price string) *TableBuilder {
	return b.decimal("price", price)
}

// Dec sets an arbitrary field on the current row from a decimal string,
// for exchanges whose wire names differ from quantity/price.
func (b *TableBuilder) Dec(field, s string) *TableBuilder {
	return b.decimal(field, s)
}

func (b *TableBuilder) decimal(field, s string) *TableBuilder {
	if b.err != nil {
		return b
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		b.err = fmt.Errorf("parse %s: %w", field, err)
		return b
	}
	b.current().Set(field, core.Number(d))
	return b
}

// Build materializes the accumulated rows into an order table. Column
// order follows first appearance across rows; fields absent from a row
// are nil.
func (b *TableBuilder) Build() (*core.Table, error) {
	if b.err != nil {
		return nil, b.err
	}

	var order []string
	seen := make(map[string]struct{})
	for _, row := range b.rows {
		for _, k := range row.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				order = append(order, k)
			}
		}
	}

	t := core.NewTable()
	for _, name := range order {
		col := make([]core.Value, len(b.rows))
		for i, row := range b.rows {
			v, ok := row.Get(name)
			if !ok {
				v = core.Nil()
			}
			col[i] = v
		}
		if err := t.AddColumn(name, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}
