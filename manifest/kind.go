package manifest

import (
	"fmt"

	"github.com/hupe1980/genemanifest/extract"
	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/schema"
)

// Column names.
const (
	ColumnGeneID   = "gene_id"
	ColumnTissueID = "tissue_id"
	ColumnFilePath = "file_path"
)

// DefaultPattern matches .../v1/ad/<gene_id>/model_tissue_<tissue_id>.tl.
const DefaultPattern = `.*/v1/ad/([^/]+)/model_tissue_(\d+)\.tl$`

// Contract is the table contract of the manifest.
var Contract = &schema.Contract{
	Table: "manifest",
	Columns: []schema.Column{
		{Name: ColumnGeneID, Type: schema.TypeString},
		{Name: ColumnTissueID, Type: schema.TypeInt32},
		{Name: ColumnFilePath, Type: schema.TypeString},
	},
	Queryable: []string{ColumnGeneID, ColumnTissueID},
	Indexes: []schema.Index{
		{Name: "idx_gene_id", Column: ColumnGeneID},
		{Name: "idx_tissue_id", Column: ColumnTissueID},
	},
	SortKey:    ColumnGeneID,
	NaturalKey: ColumnFilePath,
}

// Record is one manifest entry.
type Record struct {
	GeneID   string
	TissueID int32
	FilePath string
}

func (r Record) String() string {
	return fmt.Sprintf("Record(gene_id=%s, tissue_id=%d, file_path=%s)", r.GeneID, r.TissueID, r.FilePath)
}

// Kind binds the manifest contract to a path pattern. It serves both the
// ingestion and the lookup side.
type Kind struct {
	ex *extract.Extractor
}

var (
	_ ingest.Kind        = (*Kind)(nil)
	_ ingest.Transformer = (*Kind)(nil)
)

// NewKind creates a Kind whose pattern captures the gene in group 1 and the
// numeric tissue in group 2. An empty pattern selects DefaultPattern.
func NewKind(pattern string) (*Kind, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	ex, err := extract.New(pattern,
		extract.Field{Column: ColumnGeneID, Group: 1, Coerce: extract.String},
		extract.Field{Column: ColumnTissueID, Group: 2, Coerce: extract.Int},
		extract.Field{Column: ColumnFilePath, Group: 0, Coerce: extract.String},
	)
	if err != nil {
		return nil, err
	}
	return &Kind{ex: ex}, nil
}

// Contract returns the manifest contract.
func (k *Kind) Contract() *schema.Contract { return Contract }

// Columns returns the extracted column names.
func (k *Kind) Columns() []string { return k.ex.Columns() }

// Extract parses one listed path.
func (k *Kind) Extract(line string) (schema.Row, bool) { return k.ex.Extract(line) }

// Transform sorts rows by gene so that each gene lands in few row groups.
func (k *Kind) Transform(t *ingest.Table) *ingest.Table {
	return ingest.SortBy(Contract.SortKey)(t)
}

// Scan converts a contract-ordered row into a Record.
func (k *Kind) Scan(row schema.Row) (Record, error) {
	if len(row) != len(Contract.Columns) {
		return Record{}, fmt.Errorf("manifest: expected %d values, got %d", len(Contract.Columns), len(row))
	}
	var rec Record
	switch v := row[0].(type) {
	case string:
		rec.GeneID = v
	case nil:
	default:
		return Record{}, fmt.Errorf("manifest: gene_id: unexpected %T", v)
	}
	switch v := row[1].(type) {
	case int32:
		rec.TissueID = v
	case nil:
	default:
		return Record{}, fmt.Errorf("manifest: tissue_id: unexpected %T", v)
	}
	switch v := row[2].(type) {
	case string:
		rec.FilePath = v
	case nil:
	default:
		return Record{}, fmt.Errorf("manifest: file_path: unexpected %T", v)
	}
	return rec, nil
}
