package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is the logical type of a column.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeString
	TypeInt32
	TypeInt64
)

// String returns the string representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	default:
		return "Unknown"
	}
}

// SQL returns the DuckDB type used to persist the column.
func (t Type) SQL() string {
	switch t {
	case TypeString:
		return "VARCHAR"
	case TypeInt32:
		return "INTEGER"
	case TypeInt64:
		return "BIGINT"
	default:
		return ""
	}
}

// IsInteger reports whether t is an integer type.
func (t Type) IsInteger() bool {
	return t == TypeInt32 || t == TypeInt64
}

// Fits reports whether v is representable in the declared width of t.
func (t Type) Fits(v int64) bool {
	switch t {
	case TypeInt32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case TypeInt64:
		return true
	default:
		return false
	}
}

// Coerce converts v to the Go value stored for t: string for TypeString,
// int32 for TypeInt32 and int64 for TypeInt64. Integer columns accept any Go
// integer or a base-10 string.
func (t Type) Coerce(v any) (any, error) {
	switch t {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case TypeInt32, TypeInt64:
		var n int64
		if s, ok := v.(string); ok {
			parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", s)
			}
			n = parsed
		} else {
			i, ok := AsInt64(v)
			if !ok {
				return nil, fmt.Errorf("expected integer, got %T", v)
			}
			n = i
		}
		if !t.Fits(n) {
			return nil, fmt.Errorf("value %d out of range for %s", n, t)
		}
		if t == TypeInt32 {
			return int32(n), nil
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported column type %s", t)
	}
}

// AsInt64 returns v as int64 if it holds a Go integer that fits.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// Row is one record as an ordered list of column values.
// A nil element is a null value.
type Row []any
