package ingest

import (
	"cmp"
	"slices"

	"github.com/hupe1980/genemanifest/schema"
)

// Table is an in-memory manifest: rows whose values are positioned by Columns.
type Table struct {
	Columns []string
	Rows    []schema.Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.Columns, name)
}

// SortBy returns a transform that stable-sorts rows by column, clustering
// equal keys into common row groups. Nulls sort first. A table without the
// column is returned unchanged.
func SortBy(column string) func(*Table) *Table {
	return func(t *Table) *Table {
		pos := t.Index(column)
		if pos < 0 {
			return t
		}
		slices.SortStableFunc(t.Rows, func(a, b schema.Row) int {
			return compareValues(a[pos], b[pos])
		})
		return t
	}
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := schema.AsInt64(a); ok {
		if y, ok := schema.AsInt64(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return 0
}

// Summary describes a table after a successful build.
type Summary struct {
	Records int
	// Distinct holds the number of distinct non-null values per column.
	Distinct map[string]int
}

// Summarize counts records and distinct values per column.
func Summarize(t *Table) Summary {
	s := Summary{Records: t.Len(), Distinct: make(map[string]int, len(t.Columns))}
	for i, col := range t.Columns {
		seen := make(map[any]struct{})
		for _, row := range t.Rows {
			if row[i] != nil {
				seen[row[i]] = struct{}{}
			}
		}
		s.Distinct[col] = len(seen)
	}
	return s
}
