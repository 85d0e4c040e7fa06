package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/autoform/autoform/internal/config"
	"github.com/autoform/autoform/internal/schema"
)

// SQLite implements Catalog for SQLite database files. Metadata comes from
// the sqlite_master table and the table_info / foreign_key_list pragmas.
type SQLite struct {
	cfg *config.SourceConfig
	db  *sql.DB
}

// NewSQLite creates a new SQLite catalog for the configured file path.
func NewSQLite(cfg *config.SourceConfig) (*SQLite, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite source requires a path")
	}
	return &SQLite{cfg: cfg}, nil
}

func (s *SQLite) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.cfg.Path)
	if err != nil {
		return &TransientError{Op: "connect", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &TransientError{Op: "connect", Err: err}
	}
	s.db = db
	return nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLite) Provider() string { return "sqlite" }

func (s *SQLite) Identity(table string) string {
	return fmt.Sprintf("sqlite://%s#%s", s.cfg.Path, table)
}

func (s *SQLite) ListTables(ctx context.Context) ([]TableInfo, error) {
	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &TransientError{Op: "listing tables", Err: err}
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Name); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// tableColumn is one row of PRAGMA table_info. cid is 0-based.
type tableColumn struct {
	cid     int
	name    string
	decl    string
	notNull bool
	pk      int
}

func (s *SQLite) tableInfo(ctx context.Context, table string) ([]tableColumn, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, &TransientError{Op: "listing columns", Err: err}
	}
	defer rows.Close()

	var cols []tableColumn
	for rows.Next() {
		var (
			c       tableColumn
			notNull int
			dflt    sql.NullString
		)
		if err := rows.Scan(&c.cid, &c.name, &c.decl, &notNull, &dflt, &c.pk); err != nil {
			return nil, err
		}
		c.notNull = notNull != 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

var lengthPattern = regexp.MustCompile(`\((\d+)\)`)

func (s *SQLite) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	info, err := s.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}

	cols := make([]schema.Column, 0, len(info))
	for _, c := range info {
		col := schema.Column{
			Name:     c.name,
			Type:     schema.NormalizeType(c.decl),
			RawType:  c.decl,
			Nullable: !c.notNull && c.pk == 0,
			// INTEGER PRIMARY KEY is a rowid alias and autoincrements
			IsSequence: c.pk == 1 && strings.EqualFold(c.decl, "integer"),
		}
		if m := lengthPattern.FindStringSubmatch(c.decl); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				col.MaxLength = &n
			}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (s *SQLite) NotNullOrdinals(ctx context.Context, table string) (map[int]bool, error) {
	info, err := s.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}

	notNull := make(map[int]bool)
	for _, c := range info {
		if c.notNull || c.pk > 0 {
			// cid is 0-based; the catalog contract is 1-based ordinals
			notNull[c.cid+1] = true
		}
	}
	return notNull, nil
}

func (s *SQLite) PrimaryKeyName(ctx context.Context, table string) (string, error) {
	info, err := s.tableInfo(ctx, table)
	if err != nil {
		return "", err
	}
	for _, c := range info {
		if c.pk == 1 {
			return c.name, nil
		}
	}
	return "", ErrNoPrimaryKey
}

func (s *SQLite) OutgoingForeignKeys(ctx context.Context, table string) ([]schema.ForeignKeyEdge, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoteIdent(table)))
	if err != nil {
		return nil, &TransientError{Op: "listing foreign keys", Err: err}
	}
	defer rows.Close()

	type fkRow struct {
		id       int
		refTable string
		from, to string
	}
	var fks []fkRow
	for rows.Next() {
		var (
			r                        fkRow
			seq                      int
			onUpdate, onDelete, match string
			to                       sql.NullString
		)
		if err := rows.Scan(&r.id, &seq, &r.refTable, &r.from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		// composite constraints span several seq rows; the edge model is
		// single-column, so only the first pair is kept
		if seq != 0 {
			continue
		}
		r.to = to.String
		fks = append(fks, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(fks) == 0 {
		return nil, nil
	}

	// foreign_key_list reports column names, not positions; recover the
	// 1-based ordinals from table_info
	localInfo, err := s.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}

	var edges []schema.ForeignKeyEdge
	for _, fk := range fks {
		e := schema.ForeignKeyEdge{
			Name:            fmt.Sprintf("fk_%s_%d", table, fk.id),
			ReferrerTable:   table,
			ReferencedTable: fk.refTable,
		}
		for _, c := range localInfo {
			if c.name == fk.from {
				e.ReferrerOrdinal = c.cid + 1
				break
			}
		}

		refInfo, err := s.tableInfo(ctx, fk.refTable)
		if err != nil {
			return nil, err
		}
		refCol := fk.to
		if refCol == "" {
			// an omitted target column means the referenced primary key
			for _, c := range refInfo {
				if c.pk == 1 {
					refCol = c.name
					break
				}
			}
		}
		for _, c := range refInfo {
			if c.name == refCol {
				e.ReferencedOrdinal = c.cid + 1
				break
			}
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// compile-time interface check
var _ Catalog = (*SQLite)(nil)
