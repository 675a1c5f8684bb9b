// Package lookup loads a columnar manifest into an embedded DuckDB instance
// and answers equality predicates over its queryable columns.
//
// An Engine is bound to one record Kind. Open materializes the source (through
// the object cache for scheme://bucket/key sources), checks the loaded table
// against the kind's contract and builds its indexes. Query, Exists, Unique and
// Count are only available while the engine is ready.
//
//	eng := lookup.New[manifest.Record](kind, lookup.WithCache(c))
//	if err := eng.Open(ctx, "s3://bucket/manifest.parquet"); err != nil {
//		return err
//	}
//	defer eng.Close()
//
//	recs, err := eng.Query(ctx, lookup.Predicate{"gene_id": lookup.Some("BRCA1")})
package lookup
