package schema

import (
	"fmt"
	"regexp"
	"slices"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Column is a named, typed column.
type Column struct {
	Name string
	Type Type
}

// Index declares a single-column secondary index.
type Index struct {
	Name   string
	Column string
}

// Contract is the static declaration of one record type.
//
// Columns are ordered; the order drives generated SELECT clauses and the
// column order of written files. Contracts are declared once and must not be
// mutated at runtime.
type Contract struct {
	Table     string
	Columns   []Column
	Queryable []string
	Indexes   []Index
	// SortKey clusters rows before write. Optional.
	SortKey string
	// NaturalKey is checked for duplicates during validation. Optional.
	NaturalKey string
}

// Check verifies that the contract is well formed: identifiers are plain SQL
// identifiers, queryable and indexed columns are declared columns.
func (c *Contract) Check() error {
	if !identRe.MatchString(c.Table) {
		return fmt.Errorf("schema: invalid table name %q", c.Table)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("schema: table %s declares no columns", c.Table)
	}
	seen := make(map[string]struct{}, len(c.Columns))
	for _, col := range c.Columns {
		if !identRe.MatchString(col.Name) {
			return fmt.Errorf("schema: table %s: invalid column name %q", c.Table, col.Name)
		}
		if col.Type.SQL() == "" {
			return fmt.Errorf("schema: table %s: column %s has no storable type", c.Table, col.Name)
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("schema: table %s: duplicate column %s", c.Table, col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	for _, q := range c.Queryable {
		if _, ok := seen[q]; !ok {
			return fmt.Errorf("schema: table %s: queryable column %s is not declared", c.Table, q)
		}
	}
	for _, idx := range c.Indexes {
		if !identRe.MatchString(idx.Name) {
			return fmt.Errorf("schema: table %s: invalid index name %q", c.Table, idx.Name)
		}
		if _, ok := seen[idx.Column]; !ok {
			return fmt.Errorf("schema: table %s: index %s on undeclared column %s", c.Table, idx.Name, idx.Column)
		}
	}
	for _, key := range []string{c.SortKey, c.NaturalKey} {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			return fmt.Errorf("schema: table %s: key column %s is not declared", c.Table, key)
		}
	}
	return nil
}

// ColumnNames returns the required column names in declaration order.
func (c *Contract) ColumnNames() []string {
	names := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the declared column with the given name.
func (c *Contract) Column(name string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// IsQueryable reports whether name may appear in a lookup predicate.
func (c *Contract) IsQueryable(name string) bool {
	return slices.Contains(c.Queryable, name)
}

// Missing returns the required columns absent from present, in declaration order.
func (c *Contract) Missing(present []string) []string {
	var missing []string
	for _, col := range c.Columns {
		if !slices.Contains(present, col.Name) {
			missing = append(missing, col.Name)
		}
	}
	return missing
}
