// Package extract turns raw path strings into typed rows using a regular
// expression with ordered capture groups.
package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hupe1980/genemanifest/schema"
)

// Coercer converts one captured group into a column value.
type Coercer func(s string) (any, error)

// String keeps the captured text as is.
func String(s string) (any, error) {
	return s, nil
}

// Int parses the captured text as a base-10 int64. Width checks against the
// declared column type happen during validation, not here.
func Int(s string) (any, error) {
	return strconv.ParseInt(s, 10, 64)
}

// Field maps a capture group to a column. Group 0 is the whole match.
type Field struct {
	Column string
	Group  int
	Coerce Coercer
}

// Extractor applies one fixed pattern to raw strings.
type Extractor struct {
	re     *regexp.Regexp
	fields []Field
}

// New compiles pattern and binds fields to its capture groups.
func New(pattern string, fields ...Field) (*Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("extract: compile pattern: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("extract: no fields declared")
	}
	for _, f := range fields {
		if f.Group < 0 || f.Group > re.NumSubexp() {
			return nil, fmt.Errorf("extract: field %s references group %d, pattern has %d", f.Column, f.Group, re.NumSubexp())
		}
		if f.Coerce == nil {
			return nil, fmt.Errorf("extract: field %s has no coercer", f.Column)
		}
	}
	return &Extractor{re: re, fields: fields}, nil
}

// MustNew is like New but panics on error. Intended for package-level patterns.
func MustNew(pattern string, fields ...Field) *Extractor {
	e, err := New(pattern, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

// Pattern returns the source text of the pattern.
func (e *Extractor) Pattern() string {
	return e.re.String()
}

// Columns returns the produced column names in row order.
func (e *Extractor) Columns() []string {
	cols := make([]string, len(e.fields))
	for i, f := range e.fields {
		cols[i] = f.Column
	}
	return cols
}

// Extract returns the row for s, or false if s does not match the pattern or
// any group fails coercion.
func (e *Extractor) Extract(s string) (schema.Row, bool) {
	m := e.re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	row := make(schema.Row, len(e.fields))
	for i, f := range e.fields {
		v, err := f.Coerce(m[f.Group])
		if err != nil {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}
