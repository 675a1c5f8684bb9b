package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/columnar"
	"github.com/hupe1980/genemanifest/schema"
)

// Kind binds an Engine to one record type.
type Kind[R any] interface {
	Contract() *schema.Contract
	// Scan converts one row, ordered like the contract columns, into a record.
	Scan(row schema.Row) (R, error)
}

// Engine answers predicates over one loaded manifest.
//
// An Engine is not safe for concurrent use.
type Engine[R any] struct {
	kind     Kind[R]
	contract *schema.Contract
	opts     Options
	logger   *genemanifest.Logger
	metrics  genemanifest.MetricsCollector

	state  State
	db     *sql.DB
	source string
	local  string
	remote *blobstore.URI
}

// New creates an unopened Engine for kind.
func New[R any](kind Kind[R], optFns ...func(*Options)) *Engine[R] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Opener == nil {
		opts.Opener = columnar.OpenMemory
	}
	c := kind.Contract()
	return &Engine[R]{
		kind:     kind,
		contract: c,
		opts:     opts,
		logger:   genemanifest.OrNoop(opts.Logger).With("table", c.Table),
		metrics:  genemanifest.MetricsOrNoop(opts.Metrics),
	}
}

// State returns the current lifecycle state.
func (e *Engine[R]) State() State {
	return e.state
}

// Contract returns the contract of the engine's kind.
func (e *Engine[R]) Contract() *schema.Contract {
	return e.contract
}

// Source returns the source passed to Open.
func (e *Engine[R]) Source() string {
	return e.source
}

// LocalPath returns the local file the table was loaded from.
func (e *Engine[R]) LocalPath() string {
	return e.local
}

// Remote returns the parsed remote reference of the source, if it was remote.
func (e *Engine[R]) Remote() (blobstore.URI, bool) {
	if e.remote == nil {
		return blobstore.URI{}, false
	}
	return *e.remote, true
}

// Open materializes source, loads it into a fresh store, verifies the schema
// and builds the contract's indexes. Any failure leaves the engine failed with
// every acquired resource released.
func (e *Engine[R]) Open(ctx context.Context, source string) (err error) {
	if e.state != StateUnopened {
		return &genemanifest.StateError{Op: "open", State: e.state.String()}
	}
	if err := e.contract.Check(); err != nil {
		e.state = StateFailed
		return err
	}

	e.state = StateLoading
	e.source = source
	start := time.Now()

	defer func() {
		e.metrics.RecordLoad(time.Since(start), err)
		if err != nil {
			if e.db != nil {
				_ = e.db.Close()
				e.db = nil
			}
			e.state = StateFailed
		}
		e.logger.LogLoad(ctx, e.contract.Table, e.local, e.contract.ColumnNames(), err)
	}()

	local, err := e.materialize(ctx, source)
	if err != nil {
		return err
	}
	e.local = local

	db, err := e.opts.Opener(ctx)
	if err != nil {
		return fmt.Errorf("lookup: open store: %w", err)
	}
	e.db = db

	if err := e.load(ctx, local); err != nil {
		return err
	}
	if err := e.checkSchema(ctx); err != nil {
		return err
	}
	if err := e.createIndexes(ctx); err != nil {
		return err
	}

	e.state = StateReady
	return nil
}

func (e *Engine[R]) materialize(ctx context.Context, source string) (string, error) {
	if u, ok := blobstore.ParseURI(source); ok {
		e.remote = &u
		if e.opts.Cache == nil {
			return "", fmt.Errorf("lookup: remote source %s requires an object cache", source)
		}
		return e.opts.Cache.Resolve(ctx, u.Bucket, u.Key)
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", genemanifest.NewNotFoundError(source, err)
		}
		return "", fmt.Errorf("lookup: stat %s: %w", source, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("lookup: %s is a directory", source)
	}
	return source, nil
}

func (e *Engine[R]) load(ctx context.Context, path string) error {
	stmt := fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM read_parquet(%s)", e.contract.Table, columnar.QuoteLiteral(path))
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("lookup: load %s: %w", path, err)
	}
	return nil
}

func (e *Engine[R]) checkSchema(ctx context.Context) error {
	rows, err := e.db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = ?", e.contract.Table)
	if err != nil {
		return fmt.Errorf("lookup: read catalog: %w", err)
	}
	defer rows.Close()

	var present []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("lookup: read catalog: %w", err)
		}
		present = append(present, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lookup: read catalog: %w", err)
	}

	if missing := e.contract.Missing(present); len(missing) > 0 {
		return &genemanifest.SchemaError{Table: e.contract.Table, Missing: missing}
	}
	return nil
}

func (e *Engine[R]) createIndexes(ctx context.Context) error {
	for _, idx := range e.contract.Indexes {
		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.Name, e.contract.Table, idx.Column)
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("lookup: create index %s: %w", idx.Name, err)
		}
	}
	return nil
}

func (e *Engine[R]) ready(op string) error {
	if e.state != StateReady {
		return &genemanifest.StateError{Op: op, State: e.state.String()}
	}
	return nil
}

// Query returns every record matching all present predicate values. Columns
// are filtered in contract order; every value is coerced to its column type
// and bound as a parameter.
func (e *Engine[R]) Query(ctx context.Context, p Predicate) (out []R, err error) {
	if err := e.ready("query"); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		e.metrics.RecordQuery(len(p), len(out), time.Since(start), err)
	}()

	stmt, args, err := e.selectSQL(p)
	if err != nil {
		e.logger.LogQuery(ctx, e.contract.Table, len(args), 0, err)
		return nil, err
	}

	rows, err := e.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		err = fmt.Errorf("lookup: query: %w", err)
		e.logger.LogQuery(ctx, e.contract.Table, len(args), 0, err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		row, err := e.scanRow(rows)
		if err != nil {
			return nil, err
		}
		rec, err := e.kind.Scan(row)
		if err != nil {
			return nil, fmt.Errorf("lookup: scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup: query: %w", err)
	}

	e.logger.LogQuery(ctx, e.contract.Table, len(args), len(out), nil)
	return out, nil
}

// Exists reports whether at least one record matches p.
func (e *Engine[R]) Exists(ctx context.Context, p Predicate) (bool, error) {
	recs, err := e.Query(ctx, p)
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

// Unique returns the distinct non-null values of a queryable column in
// ascending order.
func (e *Engine[R]) Unique(ctx context.Context, column string) ([]any, error) {
	if err := e.ready("unique"); err != nil {
		return nil, err
	}
	if !e.contract.IsQueryable(column) {
		return nil, genemanifest.NewQueryError(column, "column is not queryable", nil)
	}
	col, ok := e.contract.Column(column)
	if !ok {
		return nil, genemanifest.NewQueryError(column, "unknown column", nil)
	}

	stmt := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s",
		col.Name, e.contract.Table, col.Name, col.Name)
	rows, err := e.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("lookup: unique %s: %w", column, err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		dest := scanTarget(col.Type)
		if err := rows.Scan(dest); err != nil {
			return nil, fmt.Errorf("lookup: unique %s: %w", column, err)
		}
		out = append(out, scannedValue(dest))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup: unique %s: %w", column, err)
	}
	return out, nil
}

// Count returns the number of loaded rows.
func (e *Engine[R]) Count(ctx context.Context) (int64, error) {
	if err := e.ready("count"); err != nil {
		return 0, err
	}
	var n int64
	if err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+e.contract.Table).Scan(&n); err != nil {
		return 0, fmt.Errorf("lookup: count: %w", err)
	}
	return n, nil
}

// Close releases the store. Closing a closed engine is a no-op.
func (e *Engine[R]) Close() error {
	if e.state == StateClosed {
		return nil
	}
	e.state = StateClosed
	if e.db == nil {
		return nil
	}
	db := e.db
	e.db = nil
	return db.Close()
}

func (e *Engine[R]) selectSQL(p Predicate) (string, []any, error) {
	for name := range p {
		if !e.contract.IsQueryable(name) {
			return "", nil, genemanifest.NewQueryError(name, "column is not queryable", nil)
		}
	}

	var (
		conds []string
		args  []any
	)
	for _, col := range e.contract.Columns {
		v, ok := p[col.Name].Get()
		if !ok {
			continue
		}
		coerced, err := col.Type.Coerce(v)
		if err != nil {
			return "", nil, genemanifest.NewQueryError(col.Name, err.Error(), err)
		}
		conds = append(conds, col.Name+" = ?")
		args = append(args, coerced)
	}
	if len(conds) == 0 {
		return "", nil, genemanifest.NewQueryError("", "at least one filter value is required", nil)
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(e.contract.ColumnNames(), ", "),
		e.contract.Table,
		strings.Join(conds, " AND "),
	)
	return stmt, args, nil
}

func (e *Engine[R]) scanRow(rows *sql.Rows) (schema.Row, error) {
	dests := make([]any, len(e.contract.Columns))
	for i, col := range e.contract.Columns {
		dests[i] = scanTarget(col.Type)
	}
	if err := rows.Scan(dests...); err != nil {
		return nil, fmt.Errorf("lookup: scan row: %w", err)
	}
	row := make(schema.Row, len(dests))
	for i, d := range dests {
		row[i] = scannedValue(d)
	}
	return row, nil
}

func scanTarget(t schema.Type) any {
	switch t {
	case schema.TypeInt32:
		return new(sql.NullInt32)
	case schema.TypeInt64:
		return new(sql.NullInt64)
	default:
		return new(sql.NullString)
	}
}

func scannedValue(d any) any {
	switch v := d.(type) {
	case *sql.NullInt32:
		if v.Valid {
			return v.Int32
		}
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	}
	return nil
}
