// Package sink records tokenizer diagnostics into a SQL table, for CI
// pipelines that want a queryable lint history across runs instead of just
// a pass/fail exit code.
//
// Dialect dispatch on the DSN scheme and SOCKS5 tunnelling are ported from
// the teacher's cli/cmd/config.go OpenSocks5Sql, generalized with a
// postgres:// branch for github.com/jackc/pgx/v5's database/sql driver.
package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/net/proxy"

	"github.com/eno-lang/enotok/tokenizer"
)

// Sink records tokenizer diagnostics against one open database connection.
type Sink struct {
	db      *sql.DB
	table   string
	dialect string // "postgres" or "mssql" -- selects parameter placeholder style
}

// defaultTable matches the teacher's convention of giving its recording
// tables a fixed, unconfigurable name (see sqltest/fixture.go's database
// naming) -- there is exactly one diagnostics table per database.
const defaultTable = "enotok_diagnostics"

// Open dials dsn and returns a Sink ready to Record against it. The scheme
// selects the driver exactly as OpenSocks5Sql does: postgres:// /
// postgresql:// use pgx, sqlserver:// uses SQL auth, azuresql:// uses Azure
// AD auth via the same go-mssqldb driver's azuread connector. $SQL_SOCKS,
// when set, tunnels the mssql connector's dialer through a SOCKS5 proxy --
// identical env var and logic to the teacher.
func Open(ctx context.Context, dsn string) (*Sink, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sink: could not reach %s: %w", dsn, err)
	}

	dialect := "postgres"
	if strings.HasPrefix(dsn, "sqlserver://") || strings.HasPrefix(dsn, "azuresql://") {
		dialect = "mssql"
	}

	s := &Sink{db: db, table: defaultTable, dialect: dialect}
	if err := s.ensureTable(ctx, dsn); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openDB(dsn string) (*sql.DB, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return sql.Open("pgx", dsn)
	case strings.HasPrefix(dsn, "azuresql://"):
		connector, err := azuread.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
		applySocksProxy(connector)
		return sql.OpenDB(connector), nil
	case strings.HasPrefix(dsn, "sqlserver://"):
		connector, err := mssql.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
		applySocksProxy(connector)
		return sql.OpenDB(connector), nil
	default:
		return nil, errors.New("sink: expected a postgres://, sqlserver:// or azuresql:// dsn")
	}
}

func applySocksProxy(connector *mssql.Connector) {
	socksProxyAddress := os.Getenv("SQL_SOCKS")
	if socksProxyAddress == "" {
		return
	}
	dialer, err := proxy.SOCKS5("tcp", socksProxyAddress, nil, nil)
	if err != nil {
		return
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		connector.Dialer = cd
	}
}

// ensureTable creates the diagnostics table if it doesn't exist yet. Both
// dialects get the same columns; SQL Server gets its own DDL (an
// OBJECT_ID existence check and NVARCHAR/INT column types).
func (s *Sink) ensureTable(ctx context.Context, dsn string) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	batch_id    VARCHAR(36)  NOT NULL,
	file        VARCHAR(1024) NOT NULL,
	line        INTEGER      NOT NULL,
	diag_key    VARCHAR(64)  NOT NULL,
	diag_name   VARCHAR(256) NOT NULL,
	recorded_at VARCHAR(32)  NOT NULL
)`, s.table)
	if strings.HasPrefix(dsn, "sqlserver://") || strings.HasPrefix(dsn, "azuresql://") {
		ddl = fmt.Sprintf(`IF OBJECT_ID('%s', 'U') IS NULL CREATE TABLE %s (
	batch_id    NVARCHAR(36)   NOT NULL,
	file        NVARCHAR(1024) NOT NULL,
	line        INT            NOT NULL,
	diag_key    NVARCHAR(64)   NOT NULL,
	diag_name   NVARCHAR(256)  NOT NULL,
	recorded_at NVARCHAR(32)   NOT NULL
)`, s.table, s.table)
	}
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Record inserts one row per Diagnostic, all tagged with a single freshly
// generated batch identifier for the run -- the same
// uuid.Must(uuid.NewV4()) call the teacher's sqltest/fixture.go uses for
// ephemeral per-test database names, here used for ephemeral per-run batch
// identifiers instead.
func (s *Sink) Record(ctx context.Context, file string, diags tokenizer.Diagnostics, opts tokenizer.Options, recordedAt string) error {
	if len(diags) == 0 {
		return nil
	}

	batchID := uuid.Must(uuid.NewV4()).String()
	indexing := opts.Indexing()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sink: beginning transaction: %w", err)
	}

	placeholders := "$1, $2, $3, $4, $5, $6"
	if s.dialect == "mssql" {
		placeholders = "@p1, @p2, @p3, @p4, @p5, @p6"
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (batch_id, file, line, diag_key, diag_name, recorded_at) VALUES (%s)",
		s.table, placeholders,
	)
	for _, d := range diags {
		if _, err := tx.ExecContext(ctx, stmt, batchID, file, d.Line+indexing, string(d.Key), d.Name, recordedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("sink: recording diagnostic at line %d: %w", d.Line+indexing, err)
		}
	}

	return tx.Commit()
}

// Close releases the underlying connection.
func (s *Sink) Close() error {
	return s.db.Close()
}
