// Package manifest is the gene/tissue manifest: a table mapping
// (gene_id, tissue_id) pairs to the storage location of a model file.
//
// Generate builds the manifest from a listing of object paths such as
//
//	s3://bucket/alzheimers/v1/ad/BRCA1/model_tissue_7.tl
//
// and Open loads one for lookups. Tissue identifiers may be given as integers
// or as strings in any of the forms "12", "tissue_12" or "model_tissue_12".
package manifest
