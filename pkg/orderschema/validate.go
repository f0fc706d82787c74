package orderschema

import (
	"nakula/pkg/core"
)

// Validate checks an order table against the schema and returns a new,
// validated table. Checks run in order: unknown columns, missing required
// fields, per-cell constraints (aggregated across all rows and fields),
// then default application for absent fields that declare one. The input
// table is never mutated. A validation failure is returned before any
// signing or transmission can occur.
func (s *Schema) Validate(orders *core.Table) (*core.Table, error) {
	if unknown := s.unknownColumns(orders); len(unknown) > 0 {
		return nil, &core.UnknownFieldError{Exchange: s.exchange, Fields: unknown}
	}

	if missing := s.missingRequired(orders); len(missing) > 0 {
		return nil, &core.MissingFieldError{Exchange: s.exchange, Fields: missing}
	}

	if violations := s.checkCells(orders); len(violations) > 0 {
		return nil, &core.ConstraintError{Exchange: s.exchange, Violations: violations}
	}

	out := orders.Clone()
	for _, f := range s.fields {
		if out.HasColumn(f.Name) || f.Default == nil {
			continue
		}
		if err := out.AddColumn(f.Name, core.Repeat(*f.Default, out.NumRows())); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Schema) unknownColumns(orders *core.Table) []string {
	var unknown []string
	for _, col := range orders.Columns() {
		if _, ok := s.index[col]; !ok {
			unknown = append(unknown, col)
		}
	}
	return unknown
}

func (s *Schema) missingRequired(orders *core.Table) []string {
	var missing []string
	for _, f := range s.fields {
		if f.Required && !orders.HasColumn(f.Name) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// checkCells validates every present column cell by cell. Violations are
// collected rather than returned at the first failure; each row is judged
// independently of its neighbors.
func (s *Schema) checkCells(orders *core.Table) []core.Violation {
	var violations []core.Violation
	for _, f := range s.fields {
		col, ok := orders.Column(f.Name)
		if !ok {
			continue
		}
		for row, v := range col {
			if viol, bad := f.check(v); bad {
				violations = append(violations, core.Violation{
					Row:        row,
					Field:      f.Name,
					Constraint: viol,
					Value:      v.Text(),
				})
			}
		}
	}
	return violations
}

// check validates one cell against the field's constraints. It returns a
// description of the violated constraint when the cell fails.
func (f Field) check(v core.Value) (string, bool) {
	if v.IsNil() {
		if f.Nullable {
			return "", false
		}
		return "value must not be null", true
	}

	switch f.Type {
	case TypeString:
		if _, ok := v.Str(); !ok {
			return "value must be a string", true
		}
	case TypeNumber:
		if _, ok := v.Num(); !ok {
			return "value must be a number", true
		}
	case TypeBool:
		if _, ok := v.BoolVal(); !ok {
			return "value must be a boolean", true
		}
	}

	if len(f.Allowed) > 0 {
		text := v.Text()
		found := false
		for _, a := range f.Allowed {
			if a == text {
				found = true
				break
			}
		}
		if !found {
			return "value not in allowed set " + setText(f.Allowed), true
		}
	}

	if f.Min != nil || f.Max != nil {
		d, ok := v.Num()
		if !ok {
			return "range constraint on non-numeric value", true
		}
		if f.Min != nil {
			cmp := d.Cmp(f.Min)
			if f.ExclusiveMin && cmp <= 0 {
				return "value must be greater than " + f.Min.String(), true
			}
			if cmp < 0 {
				return "value below minimum " + f.Min.String(), true
			}
		}
		if f.Max != nil && d.Cmp(f.Max) > 0 {
			return "value above maximum " + f.Max.String(), true
		}
	}

	return "", false
}

func setText(allowed []string) string {
	out := "{"
	for i, a := range allowed {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out + "}"
}

// Records serializes a validated order table into one ordered parameter
// set per row, following schema field order and skipping nil cells. The
// result is ready for canonical encoding and signing.
func (s *Schema) Records(orders *core.Table) []*core.Params {
	records := make([]*core.Params, 0, orders.NumRows())
	for row := 0; row < orders.NumRows(); row++ {
		p := core.NewParams()
		for _, f := range s.fields {
			v, ok := orders.Cell(f.Name, row)
			if !ok || v.IsNil() {
				continue
			}
			p.Set(f.Name, v)
		}
		records = append(records, p)
	}
	return records
}
