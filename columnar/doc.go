// Package columnar writes and opens manifest artifacts with an embedded
// DuckDB instance.
//
// Artifacts are Parquet files written from the table contract's declared
// types (never inferred), in the order the rows were handed over, with a
// caller-chosen row group size and block compression.
package columnar
