package columnar

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DriverName is the database/sql driver name of DuckDB.
const DriverName = "duckdb"

// OpenMemory opens a fresh, process-local in-memory DuckDB instance limited
// to a single connection. The caller owns the returned handle.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(DriverName, "")
	if err != nil {
		return nil, fmt.Errorf("columnar: open duckdb: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("columnar: ping duckdb: %w", err)
	}
	return db, nil
}

// QuoteLiteral quotes s as a SQL string literal. DuckDB does not accept
// bound parameters for file names in COPY or table functions.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
