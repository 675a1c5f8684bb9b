package lookup

// Value is an optional predicate value.
type Value struct {
	v       any
	present bool
}

// Some returns a present value. An empty string is a real filter value.
func Some(v any) Value {
	return Value{v: v, present: true}
}

// None returns an absent value; the column is not filtered.
func None() Value {
	return Value{}
}

// Get returns the value and whether it is present.
func (v Value) Get() (any, bool) {
	return v.v, v.present
}

// IsSome reports whether the value is present.
func (v Value) IsSome() bool {
	return v.present
}

// Predicate is a conjunction of column equality filters keyed by column name.
type Predicate map[string]Value
