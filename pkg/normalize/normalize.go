// Package normalize flattens arbitrarily nested response graphs into flat
// column-oriented tables. A named record path becomes the table rows,
// sibling metadata broadcasts onto every row, and mapping-valued columns
// expand recursively into dotted column names until the table is flat.
package normalize

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"

	"nakula/pkg/core"
)

// Options controls how a nested response graph is flattened.
type Options struct {
	// RecordPath names the nested sequence to explode into rows. When
	// empty, the raw graph itself is treated as the record sequence (or as
	// a single record when it is a mapping).
	RecordPath string

	// MetaFields names sibling fields broadcast as constant columns across
	// every produced row. A meta field that collides with a record-derived
	// column name is skipped: inner data wins over repeated outer context.
	MetaFields []string

	// RecordPrefix, when set, is prepended to every record-derived column
	// name. Used when several record paths are flattened into one table
	// and must not collide.
	RecordPrefix string

	// RecordColumns names the positional elements of sequence-shaped
	// records (e.g. kline arrays, depth levels). Elements beyond the
	// provided names fall back to their index.
	RecordColumns []string
}

// decodeConfig decodes numbers as json.Number so int64 order and trade
// ids above 2^53 survive the boundary without float64 rounding.
var decodeConfig = sonic.Config{UseNumber: true}.Froze()

// DecodeJSON decodes raw response bytes into a tagged value graph.
// Decoding happens at the boundary; the pipeline itself never sees bytes.
func DecodeJSON(data []byte) (core.Value, error) {
	var raw any
	if err := decodeConfig.Unmarshal(data, &raw); err != nil {
		return core.Nil(), fmt.Errorf("decode response: %w", err)
	}
	return core.FromJSON(raw), nil
}

// Flatten explodes the record path of a nested response graph into a flat
// table, broadcasts the requested metadata columns, expands mapping-valued
// columns to dotted names, and drops the reserved raw-payload column.
// An empty or absent record path yields a table with the meta columns only
// and zero rows.
func Flatten(raw core.Value, opts Options) (*core.Table, error) {
	records, meta, err := splitRecords(raw, opts)
	if err != nil {
		return nil, err
	}

	t, err := explode(records, opts)
	if err != nil {
		return nil, err
	}

	for _, field := range opts.MetaFields {
		if t.HasColumn(field) {
			continue
		}
		v, ok := meta(field)
		if !ok {
			v = core.Nil()
		}
		if err := t.AddColumn(field, core.Repeat(v, t.NumRows())); err != nil {
			return nil, err
		}
	}

	// The raw-payload column goes before expansion. Expanding first would
	// explode its mapping cells into dotted columns the drop cannot reach.
	t.DropColumn(core.InfoColumn)
	expandMappingColumns(t)
	return t, nil
}

// splitRecords resolves the record sequence and a metadata lookup from the
// raw graph.
func splitRecords(raw core.Value, opts Options) ([]core.Value, func(string) (core.Value, bool), error) {
	noMeta := func(string) (core.Value, bool) { return core.Nil(), false }

	if opts.RecordPath == "" {
		switch raw.Kind() {
		case core.KindSequence:
			seq, _ := raw.SeqVal()
			return seq, noMeta, nil
		case core.KindMapping:
			return []core.Value{raw}, noMeta, nil
		case core.KindNil:
			return nil, noMeta, nil
		default:
			return nil, nil, fmt.Errorf("cannot flatten %s value without a record path", raw.Kind())
		}
	}

	m, ok := raw.MapVal()
	if !ok {
		return nil, nil, fmt.Errorf("record path %q requires a mapping, got %s", opts.RecordPath, raw.Kind())
	}
	meta := func(field string) (core.Value, bool) {
		return m.Get(field)
	}

	v, ok := m.Get(opts.RecordPath)
	if !ok || v.IsNil() {
		return nil, meta, nil
	}
	seq, ok := v.SeqVal()
	if !ok {
		return nil, nil, fmt.Errorf("record path %q is %s, want sequence", opts.RecordPath, v.Kind())
	}
	return seq, meta, nil
}

// explode turns each record into one row, unioning column names across
// records in first-seen order. Missing cells are nil.
func explode(records []core.Value, opts Options) (*core.Table, error) {
	var order []string
	cells := make(map[string][]core.Value)

	addCell := func(name string, row int, v core.Value) {
		col, exists := cells[name]
		if !exists {
			order = append(order, name)
			col = make([]core.Value, row)
			for i := range col {
				col[i] = core.Nil()
			}
		}
		cells[name] = append(col, v)
	}

	for row, rec := range records {
		switch rec.Kind() {
		case core.KindMapping:
			m, _ := rec.MapVal()
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				addCell(opts.RecordPrefix+k, row, v)
			}
		case core.KindSequence:
			seq, _ := rec.SeqVal()
			for i, v := range seq {
				name := strconv.Itoa(i)
				if i < len(opts.RecordColumns) {
					name = opts.RecordColumns[i]
				}
				addCell(opts.RecordPrefix+name, row, v)
			}
		default:
			addCell(opts.RecordPrefix+"value", row, rec)
		}

		// Pad columns this record did not provide.
		for name, col := range cells {
			if len(col) == row {
				cells[name] = append(col, core.Nil())
			}
		}
	}

	t := core.NewTable()
	for _, name := range order {
		if err := t.AddColumn(name, cells[name]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// expandMappingColumns repeatedly replaces every column whose cells are
// all mappings with one dotted column per nested key, until no column
// holds a nested mapping. The expansion is driven by the value kind tags.
func expandMappingColumns(t *core.Table) {
	for {
		expanded := false
		for _, name := range t.Columns() {
			col, _ := t.Column(name)
			if !allMappings(col) {
				continue
			}
			expandColumn(t, name, col)
			expanded = true
		}
		if !expanded {
			return
		}
	}
}

func allMappings(col []core.Value) bool {
	if len(col) == 0 {
		return false
	}
	for _, v := range col {
		if v.Kind() != core.KindMapping {
			return false
		}
	}
	return true
}

func expandColumn(t *core.Table, name string, col []core.Value) {
	var subOrder []string
	seen := make(map[string]struct{})
	for _, v := range col {
		m, _ := v.MapVal()
		for _, k := range m.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				subOrder = append(subOrder, k)
			}
		}
	}

	t.DropColumn(name)
	for _, k := range subOrder {
		sub := make([]core.Value, len(col))
		for i, v := range col {
			m, _ := v.MapVal()
			cell, ok := m.Get(k)
			if !ok {
				cell = core.Nil()
			}
			sub[i] = cell
		}
		// Column names from the parent survive a collision with expanded
		// sub-columns only if added first; expansion keeps existing data.
		if t.HasColumn(name + "." + k) {
			continue
		}
		_ = t.AddColumn(name+"."+k, sub)
	}
}
