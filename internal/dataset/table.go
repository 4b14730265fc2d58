package dataset

import "fmt"

// Column is one entry of a declared schema.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Schema is the fixed column order of one artifact.
type Schema struct {
	Name    string
	Columns []Column
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of column name, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Row is anything that can lay itself out in schema order.
type Row interface {
	Values() []Value
}

// Table is a named, schema-checked set of rows ready for a writer.
type Table struct {
	Schema
	Rows [][]Value
}

// Build lays out rows against schema and rejects any row whose arity or cell
// kinds disagree with the declaration.
func Build[R Row](schema Schema, rows []R) (*Table, error) {
	t := &Table{Schema: schema, Rows: make([][]Value, 0, len(rows))}
	for i, r := range rows {
		vals := r.Values()
		if err := schema.check(vals); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", schema.Name, i, err)
		}
		t.Rows = append(t.Rows, vals)
	}
	return t, nil
}

func (s Schema) check(vals []Value) error {
	if len(vals) != len(s.Columns) {
		return fmt.Errorf("got %d values for %d columns", len(vals), len(s.Columns))
	}
	for i, c := range s.Columns {
		v := vals[i]
		if v.Kind() != c.Kind {
			return fmt.Errorf("column %s: got %s, declared %s", c.Name, v.Kind(), c.Kind)
		}
		if v.IsNull() && !c.Nullable {
			return fmt.Errorf("column %s: null in non-nullable column", c.Name)
		}
	}
	return nil
}
