// Package genemanifest builds and queries compact columnar manifests that map
// (gene_id, tissue_id) pairs to storage locations.
//
// The module has two halves:
//
//   - ingestion ([ingest]): a line-oriented list of object paths is run through
//     a pattern extractor, validated, sorted and written as a Parquet file with an
//     explicit schema;
//   - lookup ([lookup]): a manifest is loaded into an embedded DuckDB instance,
//     its schema is validated, indexes are built and equality predicates answered.
//
// Remote manifests and the objects they reference are materialized locally by
// the object cache ([cache]) on top of a [blobstore] (S3, MinIO or a local
// directory).
//
// # Quick Start
//
//	stats, err := manifest.Generate(ctx, listing, "manifest.parquet")
//
//	m, err := manifest.Open(ctx, "s3://my-bucket/manifest.parquet",
//	    manifest.WithCache(cache.New("/tmp/genemanifest", s3Store)),
//	)
//	defer m.Close()
//
//	records, err := m.RecordsForGene(ctx, "BRCA1")
//	local, ok, err := m.FilePath(ctx, "BRCA1", "model_7")
//
// This package holds what every layer shares: the error taxonomy and the
// structured [Logger] injected into each component.
package genemanifest
