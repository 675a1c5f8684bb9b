// Package schema declares table contracts shared by ingestion and lookup.
//
// A Contract is a static description of one record type: the table name, the
// ordered required columns with their logical types, the subset of columns that
// may appear in lookup predicates and the secondary indexes to build after
// load. New record types extend the system by declaring a new Contract; the
// ingest and lookup frameworks never change.
package schema
