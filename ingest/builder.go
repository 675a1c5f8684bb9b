package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/schema"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Kind supplies the record-type specific hooks of a build.
type Kind interface {
	// Contract returns the table contract the output must satisfy.
	Contract() *schema.Contract
	// Columns names the positions of rows returned by Extract.
	Columns() []string
	// Extract turns one raw line into a row, or reports no match.
	Extract(line string) (schema.Row, bool)
}

// Transformer is implemented by kinds that reshape the table before write.
type Transformer interface {
	Transform(t *Table) *Table
}

// Sink persists a validated table.
type Sink interface {
	Write(ctx context.Context, c *schema.Contract, columns []string, rows []schema.Row, dest string, rowGroupSize int) error
}

// Stats reports the outcome of a build.
type Stats struct {
	Lines        int
	Valid        int
	Invalid      int
	RowGroupSize int
	Elapsed      time.Duration
}

// Builder runs ingestion for one Kind.
type Builder struct {
	kind    Kind
	sink    Sink
	opts    Options
	logger  *genemanifest.Logger
	metrics genemanifest.MetricsCollector
}

// NewBuilder creates a Builder. The kind's contract must be well formed.
func NewBuilder(kind Kind, sink Sink, optFns ...func(*Options)) (*Builder, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("ingest: chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.RowGroupMin <= 0 || opts.RowGroupMax < opts.RowGroupMin {
		return nil, fmt.Errorf("ingest: invalid row group bounds [%d, %d]", opts.RowGroupMin, opts.RowGroupMax)
	}
	if err := kind.Contract().Check(); err != nil {
		return nil, err
	}
	return &Builder{
		kind:    kind,
		sink:    sink,
		opts:    opts,
		logger:  genemanifest.OrNoop(opts.Logger),
		metrics: genemanifest.MetricsOrNoop(opts.Metrics),
	}, nil
}

type line struct {
	num  int
	text string
}

// Build reads r chunk by chunk and extracts every non-blank line. Lines that
// do not extract are logged and counted. A read failure, or a result without
// any valid record, is an error.
func (b *Builder) Build(ctx context.Context, r io.Reader) (_ *Table, stats Stats, err error) {
	start := time.Now()
	table := &Table{Columns: b.kind.Columns()}
	defer func() {
		b.metrics.RecordIngest(stats.Lines, stats.Valid, stats.Invalid, time.Since(start), err)
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	chunk := make([]line, 0, b.opts.ChunkSize)
	lineNum := 0

	flush := func() {
		for _, l := range chunk {
			row, ok := b.kind.Extract(l.text)
			if ok {
				table.Rows = append(table.Rows, row)
				stats.Valid++
			} else {
				stats.Invalid++
				b.logger.LogInvalidLine(ctx, l.num, l.text)
			}
			if b.opts.ProgressEvery > 0 && l.num%b.opts.ProgressEvery == 0 {
				b.logger.LogProgress(ctx, l.num, stats.Valid, stats.Invalid, time.Since(start))
			}
		}
		chunk = chunk[:0]
	}

	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		stats.Lines++
		chunk = append(chunk, line{num: lineNum, text: text})
		if len(chunk) == b.opts.ChunkSize {
			flush()
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("ingest: read input at line %d: %w", lineNum+1, err)
	}
	flush()

	stats.Elapsed = time.Since(start)
	b.logger.InfoContext(ctx, "ingestion finished",
		"lines", stats.Lines,
		"valid", stats.Valid,
		"invalid", stats.Invalid,
		"elapsed", stats.Elapsed,
	)

	if stats.Valid == 0 {
		return nil, stats, &genemanifest.ValidationError{Reason: "no valid records extracted"}
	}
	return table, stats, nil
}

// Validate checks the table against the contract. Missing required columns
// and integers outside their declared width are errors; nulls and duplicate
// natural keys are logged as warnings.
func (b *Builder) Validate(ctx context.Context, t *Table) error {
	c := b.kind.Contract()

	if missing := c.Missing(t.Columns); len(missing) > 0 {
		return &genemanifest.ValidationError{
			Column: missing[0],
			Reason: "required columns absent: " + strings.Join(missing, ", "),
		}
	}

	for _, col := range c.Columns {
		pos := t.Index(col.Name)
		nulls := 0
		for n, row := range t.Rows {
			v := row[pos]
			if v == nil {
				nulls++
				continue
			}
			if !col.Type.IsInteger() {
				continue
			}
			i, ok := schema.AsInt64(v)
			if !ok {
				return &genemanifest.ValidationError{Column: col.Name, Reason: fmt.Sprintf("row %d: %T is not an integer", n, v)}
			}
			if !col.Type.Fits(i) {
				return &genemanifest.ValidationError{Column: col.Name, Reason: fmt.Sprintf("row %d: value %d out of range for %s", n, i, col.Type)}
			}
		}
		if nulls > 0 {
			b.logger.WarnContext(ctx, "null values", "column", col.Name, "count", nulls)
		}
	}

	if c.NaturalKey != "" {
		pos := t.Index(c.NaturalKey)
		seen := make(map[any]struct{}, len(t.Rows))
		dups := 0
		for _, row := range t.Rows {
			if row[pos] == nil {
				continue
			}
			if _, ok := seen[row[pos]]; ok {
				dups++
				continue
			}
			seen[row[pos]] = struct{}{}
		}
		if dups > 0 {
			b.logger.WarnContext(ctx, "duplicate keys", "column", c.NaturalKey, "count", dups)
		}
	}
	return nil
}

// Transform applies the kind's Transformer hook; identity otherwise.
func (b *Builder) Transform(t *Table) *Table {
	if tr, ok := b.kind.(Transformer); ok {
		return tr.Transform(t)
	}
	return t
}

// RowGroupSize returns the row group size used for a table of n records.
func (b *Builder) RowGroupSize(n int) int {
	return RowGroupSize(n, b.opts.RowGroupMin, b.opts.RowGroupMax)
}

// Write persists the table at dest.
func (b *Builder) Write(ctx context.Context, t *Table, dest string) error {
	size := b.RowGroupSize(t.Len())
	if err := b.sink.Write(ctx, b.kind.Contract(), t.Columns, t.Rows, dest, size); err != nil {
		return fmt.Errorf("ingest: write %s: %w", dest, err)
	}
	return nil
}

// Run executes Build, Validate, Transform and Write. Nothing is written unless
// every earlier stage succeeded.
func (b *Builder) Run(ctx context.Context, r io.Reader, dest string) (Stats, error) {
	table, stats, err := b.Build(ctx, r)
	if err != nil {
		return stats, err
	}
	if err := b.Validate(ctx, table); err != nil {
		return stats, err
	}
	table = b.Transform(table)

	stats.RowGroupSize = b.RowGroupSize(table.Len())
	if err := b.Write(ctx, table, dest); err != nil {
		return stats, err
	}

	summary := Summarize(table)
	args := []any{"path", dest, "records", summary.Records}
	for _, col := range b.kind.Contract().Queryable {
		args = append(args, "unique_"+col, summary.Distinct[col])
	}
	b.logger.InfoContext(ctx, "manifest written", args...)
	return stats, nil
}
