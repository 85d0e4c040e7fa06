package catalog

import (
	"context"

	"github.com/autoform/autoform/internal/config"
	"github.com/autoform/autoform/internal/schema"
)

// TableInfo is one table as listed by the catalog, with a row estimate where
// the backend provides one.
type TableInfo struct {
	Name        string
	RowEstimate int64
}

// Catalog reads schema metadata from a relational database. Implementations
// never mutate the database. All calls block until the backend answers; a
// connection or query failure surfaces as a *TransientError.
type Catalog interface {
	// Connect establishes a read-only connection to the database.
	Connect(ctx context.Context) error

	// Close closes the connection.
	Close() error

	// Provider returns the backing provider name, e.g. "postgresql".
	Provider() string

	// Identity returns the full datasource identity key for a table. Two
	// tables with the same name in different datasources must have
	// different keys.
	Identity(table string) string

	// ListTables lists the user tables of the configured schema.
	ListTables(ctx context.Context) ([]TableInfo, error)

	// Columns returns the table's columns in ordinal order.
	Columns(ctx context.Context, table string) ([]schema.Column, error)

	// NotNullOrdinals returns the 1-based ordinals of columns carrying a
	// NOT NULL constraint.
	NotNullOrdinals(ctx context.Context, table string) (map[int]bool, error)

	// PrimaryKeyName returns the name of the table's primary key column.
	// Tables without a primary key return ErrNoPrimaryKey.
	PrimaryKeyName(ctx context.Context, table string) (string, error)

	// OutgoingForeignKeys returns every foreign-key constraint where the
	// table is the referrer. Ordinals are 1-based.
	OutgoingForeignKeys(ctx context.Context, table string) ([]schema.ForeignKeyEdge, error)
}

// New creates a Catalog for the given source configuration.
func New(cfg *config.SourceConfig) (Catalog, error) {
	switch cfg.Type {
	case "postgresql":
		return NewPostgres(cfg)
	case "sqlite":
		return NewSQLite(cfg)
	default:
		return nil, &UnsupportedProviderError{Provider: cfg.Type}
	}
}
