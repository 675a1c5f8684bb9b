// Package ingest is the chunked ingestion framework that turns a line-oriented
// listing into a columnar manifest.
//
// A Builder is parameterized by a Kind (contract + extractor, optionally a
// Transformer) and a Sink that persists the result. Run executes the whole
// batch: Build, Validate, Transform, Write. Every stage is fatal on error; the
// only recovered failure is a line that does not extract, which is logged,
// counted and skipped.
package ingest
