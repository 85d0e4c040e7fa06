package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoform/autoform/internal/config"
	"github.com/autoform/autoform/internal/schema"
)

// Postgres implements Catalog for PostgreSQL databases.
type Postgres struct {
	cfg    *config.SourceConfig
	pool   *pgxpool.Pool
	schema string // pg schema to inspect, defaults to "public"
}

// NewPostgres creates a new PostgreSQL catalog.
func NewPostgres(cfg *config.SourceConfig) (*Postgres, error) {
	s := cfg.Schema
	if s == "" {
		s = "public"
	}
	return &Postgres{cfg: cfg, schema: s}, nil
}

func (p *Postgres) Connect(ctx context.Context) error {
	connStr := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s default_query_exec_mode=simple_protocol",
		p.cfg.Host, p.cfg.Port, p.cfg.Database, p.cfg.Username, p.cfg.Password,
	)
	if p.cfg.SSL {
		connStr += " sslmode=require"
	} else {
		connStr += " sslmode=disable"
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parsing connection string: %w", err)
	}
	// A single synchronous invocation never needs more than one connection.
	poolCfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return &TransientError{Op: "connect", Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &TransientError{Op: "connect", Err: err}
	}

	p.pool = pool
	return nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

func (p *Postgres) Provider() string { return "postgresql" }

// Identity keys a table by its full datasource coordinates, so the same table
// name in two databases never collides in a visited set.
func (p *Postgres) Identity(table string) string {
	return fmt.Sprintf("postgresql://%s:%d/%s?schema=%s#%s",
		p.cfg.Host, p.cfg.Port, p.cfg.Database, p.schema, table)
}

func (p *Postgres) ListTables(ctx context.Context) ([]TableInfo, error) {
	query := `
		SELECT c.relname, c.reltuples::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1
		  AND c.relkind = 'r'
		ORDER BY c.relname`

	rows, err := p.pool.Query(ctx, query, p.schema)
	if err != nil {
		return nil, &TransientError{Op: "listing tables", Err: err}
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Name, &t.RowEstimate); err != nil {
			return nil, &TransientError{Op: "listing tables", Err: err}
		}
		// reltuples is -1 for never-analyzed tables
		if t.RowEstimate < 0 {
			t.RowEstimate = 0
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Op: "listing tables", Err: err}
	}
	return tables, nil
}

func (p *Postgres) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT
			column_name,
			data_type,
			is_nullable,
			character_maximum_length,
			COALESCE(column_default LIKE 'nextval(%', false) OR is_identity = 'YES'
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		ORDER BY ordinal_position`

	rows, err := p.pool.Query(ctx, query, p.schema, table)
	if err != nil {
		return nil, &TransientError{Op: "listing columns", Err: err}
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			name, dataType, nullable string
			maxLen                   *int
			isSequence               bool
		)
		if err := rows.Scan(&name, &dataType, &nullable, &maxLen, &isSequence); err != nil {
			return nil, &TransientError{Op: "listing columns", Err: err}
		}
		cols = append(cols, schema.Column{
			Name:       name,
			Type:       schema.NormalizeType(dataType),
			RawType:    dataType,
			MaxLength:  maxLen,
			Nullable:   nullable == "YES",
			IsSequence: isSequence,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Op: "listing columns", Err: err}
	}
	return cols, nil
}

func (p *Postgres) NotNullOrdinals(ctx context.Context, table string) (map[int]bool, error) {
	query := `
		SELECT ordinal_position
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		  AND is_nullable = 'NO'`

	rows, err := p.pool.Query(ctx, query, p.schema, table)
	if err != nil {
		return nil, &TransientError{Op: "checking not-null columns", Err: err}
	}
	defer rows.Close()

	notNull := make(map[int]bool)
	for rows.Next() {
		var ordinal int
		if err := rows.Scan(&ordinal); err != nil {
			return nil, &TransientError{Op: "checking not-null columns", Err: err}
		}
		notNull[ordinal] = true
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Op: "checking not-null columns", Err: err}
	}
	return notNull, nil
}

func (p *Postgres) PrimaryKeyName(ctx context.Context, table string) (string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		  AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
		LIMIT 1`

	var name string
	row := p.pool.QueryRow(ctx, query, p.schema, table)
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoPrimaryKey
		}
		return "", &TransientError{Op: "resolving primary key", Err: err}
	}
	return name, nil
}

func (p *Postgres) OutgoingForeignKeys(ctx context.Context, table string) ([]schema.ForeignKeyEdge, error) {
	// pg_constraint stores column positions as 1-based attnums, which is
	// exactly the ordinal convention the edge carries.
	query := `
		SELECT
			con.conname,
			confrel.relname AS referenced_table,
			con.conkey[1]::int AS referrer_ordinal,
			con.confkey[1]::int AS referenced_ordinal
		FROM pg_constraint con
		JOIN pg_class rel ON rel.oid = con.conrelid
		JOIN pg_class confrel ON confrel.oid = con.confrelid
		JOIN pg_namespace n ON n.oid = rel.relnamespace
		WHERE con.contype = 'f'
		  AND n.nspname = $1
		  AND rel.relname = $2
		ORDER BY con.conname`

	rows, err := p.pool.Query(ctx, query, p.schema, table)
	if err != nil {
		return nil, &TransientError{Op: "listing foreign keys", Err: err}
	}
	defer rows.Close()

	var edges []schema.ForeignKeyEdge
	for rows.Next() {
		var e schema.ForeignKeyEdge
		if err := rows.Scan(&e.Name, &e.ReferencedTable, &e.ReferrerOrdinal, &e.ReferencedOrdinal); err != nil {
			return nil, &TransientError{Op: "listing foreign keys", Err: err}
		}
		e.ReferrerTable = table
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Op: "listing foreign keys", Err: err}
	}
	return edges, nil
}

// compile-time interface check
var _ Catalog = (*Postgres)(nil)
