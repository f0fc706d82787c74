// Package coerce converts raw response tables into canonically typed
// tables using an exchange's classification registry, and converts
// outbound parameters back into the wire representation the exchange
// expects. Both directions are pure transforms.
package coerce

import (
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"nakula/pkg/classify"
	"nakula/pkg/core"
)

// stringTimeLayouts are the locale-free layouts accepted for string
// timestamp columns, tried in order.
var stringTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Inbound applies the registry to every column of the table: epoch
// timestamps become Time values, string timestamps are parsed, numeric
// strings become decimals, boolean tokens become booleans. Unclassified
// columns and nil cells pass through unchanged. The input table is never
// mutated; a value that cannot be parsed under its declared kind yields a
// ConversionError naming the column and offending value.
func Inbound(t *core.Table, reg *classify.Registry) (*core.Table, error) {
	out := t.Clone()
	for _, name := range out.Columns() {
		c := reg.Lookup(name)
		if c.Kind == classify.Passthrough {
			continue
		}
		col, _ := out.Column(name)
		converted := make([]core.Value, len(col))
		for i, v := range col {
			cv, err := convertCell(v, c, reg.Exchange(), name, i)
			if err != nil {
				return nil, err
			}
			converted[i] = cv
		}
		if err := out.SetColumn(name, converted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func convertCell(v core.Value, c classify.Classification, exchange, column string, row int) (core.Value, error) {
	if v.IsNil() {
		return v, nil
	}

	fail := func() (core.Value, error) {
		return core.Nil(), &core.ConversionError{
			Exchange: exchange,
			Column:   column,
			Row:      row,
			Value:    v.Text(),
			Want:     c.Kind.String(),
		}
	}

	switch c.Kind {
	case classify.IntEpochTimestamp:
		if _, isTime := v.TimeVal(); isTime {
			return v, nil
		}
		d, ok := v.Num()
		if !ok {
			// Some exchanges quote epoch integers as strings.
			s, isStr := v.Str()
			if !isStr {
				return fail()
			}
			parsed, _, err := apd.NewFromString(s)
			if err != nil {
				return fail()
			}
			d = parsed
		}
		epoch, err := d.Int64()
		if err != nil {
			return fail()
		}
		if c.Unit == classify.Seconds {
			return core.Time(time.Unix(epoch, 0).UTC()), nil
		}
		return core.Time(time.UnixMilli(epoch).UTC()), nil

	case classify.StringTimestamp:
		if _, isTime := v.TimeVal(); isTime {
			return v, nil
		}
		s, ok := v.Str()
		if !ok {
			return fail()
		}
		for _, layout := range stringTimeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return core.Time(ts.UTC()), nil
			}
		}
		return fail()

	case classify.NumericString:
		if _, isNum := v.Num(); isNum {
			return v, nil
		}
		s, ok := v.Str()
		if !ok {
			return fail()
		}
		d, _, err := apd.NewFromString(s)
		if err != nil {
			return fail()
		}
		return core.Number(d), nil

	case classify.BooleanString:
		if _, isBool := v.BoolVal(); isBool {
			return v, nil
		}
		s, ok := v.Str()
		if !ok {
			return fail()
		}
		switch strings.ToLower(s) {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		}
		return fail()
	}

	return v, nil
}

// Outbound converts every parameter whose name is in the timestamp-key
// set and whose value is a timestamp into integer epoch milliseconds.
// All other parameters pass through unchanged. The input is never mutated.
func Outbound(params *core.Params, timestampKeys map[string]struct{}) *core.Params {
	out := params.Clone()
	for _, key := range out.Keys() {
		if _, ok := timestampKeys[key]; !ok {
			continue
		}
		v, _ := out.Get(key)
		if ts, isTime := v.TimeVal(); isTime {
			out.Set(key, core.NumberFromInt(ts.UnixMilli()))
		}
	}
	return out
}
