package columnar

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/schema"
	"github.com/marcboeker/go-duckdb/v2" // also registers the "duckdb" driver
)

// Compression codecs accepted by the Parquet writer.
const (
	CompressionSnappy       = "snappy"
	CompressionZstd         = "zstd"
	CompressionGzip         = "gzip"
	CompressionUncompressed = "uncompressed"
)

const stagingTable = "staging"

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Compression is the Parquet block codec. Defaults to snappy.
	Compression string
	Logger      *genemanifest.Logger
}

// Writer persists rows as a Parquet file with an explicit schema.
type Writer struct {
	opts   WriterOptions
	logger *genemanifest.Logger
}

// NewWriter creates a Writer.
func NewWriter(optFns ...func(*WriterOptions)) (*Writer, error) {
	opts := WriterOptions{Compression: CompressionSnappy}
	for _, fn := range optFns {
		fn(&opts)
	}
	switch opts.Compression {
	case CompressionSnappy, CompressionZstd, CompressionGzip, CompressionUncompressed:
	default:
		return nil, fmt.Errorf("columnar: unsupported compression %q", opts.Compression)
	}
	return &Writer{opts: opts, logger: genemanifest.OrNoop(opts.Logger)}, nil
}

// Write stores rows at dest. columns names the value positions of rows;
// the file carries exactly the contract's columns, in contract order, typed
// as declared. Rows keep their order. The file appears at dest only if the
// whole write succeeded.
func (w *Writer) Write(ctx context.Context, c *schema.Contract, columns []string, rows []schema.Row, dest string, rowGroupSize int) error {
	if rowGroupSize <= 0 {
		return fmt.Errorf("columnar: row group size must be positive, got %d", rowGroupSize)
	}
	positions := make([]int, len(c.Columns))
	for i, col := range c.Columns {
		pos := -1
		for j, name := range columns {
			if name == col.Name {
				pos = j
				break
			}
		}
		if pos < 0 {
			return &genemanifest.ValidationError{Column: col.Name, Reason: "required column absent"}
		}
		positions[i] = pos
	}

	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("columnar: create output directory: %w", err)
		}
	}
	tmp := dest + ".tmp"
	_ = os.Remove(tmp)

	if err := w.write(ctx, c, positions, rows, tmp, rowGroupSize); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("columnar: move %s into place: %w", dest, err)
	}

	w.logger.InfoContext(ctx, "parquet file written",
		"path", dest,
		"rows", len(rows),
		"compression", w.opts.Compression,
		"row_group_size", rowGroupSize,
	)
	return nil
}

func (w *Writer) write(ctx context.Context, c *schema.Contract, positions []int, rows []schema.Row, path string, rowGroupSize int) error {
	db, err := OpenMemory(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("columnar: acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, createTableSQL(stagingTable, c)); err != nil {
		return fmt.Errorf("columnar: create staging table: %w", err)
	}

	if err := appendRows(conn, c, positions, rows); err != nil {
		return err
	}

	copySQL := fmt.Sprintf("COPY (SELECT %s FROM %s) TO %s (FORMAT PARQUET, COMPRESSION %s, ROW_GROUP_SIZE %d)",
		strings.Join(c.ColumnNames(), ", "), stagingTable, QuoteLiteral(path), QuoteLiteral(w.opts.Compression), rowGroupSize)
	if _, err := conn.ExecContext(ctx, copySQL); err != nil {
		return fmt.Errorf("columnar: write parquet: %w", err)
	}
	return nil
}

func createTableSQL(table string, c *schema.Contract) string {
	defs := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		defs[i] = col.Name + " " + col.Type.SQL()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

func appendRows(conn *sql.Conn, c *schema.Contract, positions []int, rows []schema.Row) error {
	return conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("columnar: unexpected driver connection %T", driverConn)
		}
		appender, err := duckdb.NewAppenderFromConn(dc, "", stagingTable)
		if err != nil {
			return fmt.Errorf("columnar: create appender: %w", err)
		}

		values := make([]driver.Value, len(c.Columns))
		for n, row := range rows {
			for i, col := range c.Columns {
				v, err := storable(col, row[positions[i]])
				if err != nil {
					_ = appender.Close()
					return fmt.Errorf("columnar: row %d: %w", n, err)
				}
				values[i] = v
			}
			if err := appender.AppendRow(values...); err != nil {
				_ = appender.Close()
				return fmt.Errorf("columnar: append row %d: %w", n, err)
			}
		}
		if err := appender.Close(); err != nil {
			return fmt.Errorf("columnar: flush appender: %w", err)
		}
		return nil
	})
}

// storable converts v to the exact Go type the appender expects for col.
func storable(col schema.Column, v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	out, err := col.Type.Coerce(v)
	if err != nil {
		return nil, &genemanifest.ValidationError{Column: col.Name, Reason: err.Error()}
	}
	return out, nil
}
