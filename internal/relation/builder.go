package relation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/autoform/autoform/internal/catalog"
	"github.com/autoform/autoform/internal/schema"
)

// Builder discovers the tables reachable from a referrer via its outgoing
// foreign keys, resolving everything a value-relation widget later needs:
// the referenced table's primary key name and the exact column pair.
type Builder struct {
	cat catalog.Catalog
	log *slog.Logger
}

// New creates a Builder over the given catalog.
func New(cat catalog.Catalog, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{cat: cat, log: log}
}

// Expand returns the table's fully resolved outgoing edges and the distinct
// referenced tables, in constraint order. A malformed constraint (missing
// primary key, out-of-range ordinal) skips that edge only; sibling edges are
// still expanded. A transient catalog failure aborts the expansion, so the
// caller can distinguish "unreachable" from "no foreign keys".
func (b *Builder) Expand(ctx context.Context, table string) ([]schema.ForeignKeyEdge, []string, error) {
	raw, err := b.cat.OutgoingForeignKeys(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	referrerCols, err := b.cat.Columns(ctx, table)
	if err != nil {
		return nil, nil, err
	}

	var (
		edges      []schema.ForeignKeyEdge
		referenced []string
		seen       = make(map[string]bool)
	)

	for _, e := range raw {
		pk, err := b.cat.PrimaryKeyName(ctx, e.ReferencedTable)
		if err != nil {
			if errors.Is(err, catalog.ErrNoPrimaryKey) {
				b.log.Warn("skipping foreign key: referenced table has no primary key",
					"constraint", e.Name, "table", table, "referenced", e.ReferencedTable)
				continue
			}
			return nil, nil, err
		}

		referencedCols, err := b.cat.Columns(ctx, e.ReferencedTable)
		if err != nil {
			return nil, nil, err
		}

		// catalog ordinals are 1-based; convert before indexing
		native := columnName(referrerCols, e.ReferrerOrdinal-1)
		foreign := columnName(referencedCols, e.ReferencedOrdinal-1)
		if native == "" || foreign == "" {
			b.log.Warn("skipping malformed foreign key: cannot resolve column pair",
				"constraint", e.Name, "table", table,
				"referrer_ordinal", e.ReferrerOrdinal, "referenced_ordinal", e.ReferencedOrdinal)
			continue
		}

		e.ReferrerColumn = native
		e.ReferencedColumn = foreign
		e.ReferencedPrimaryKey = pk
		edges = append(edges, e)

		if !seen[e.ReferencedTable] {
			seen[e.ReferencedTable] = true
			referenced = append(referenced, e.ReferencedTable)
		}
	}

	return edges, referenced, nil
}

func columnName(cols []schema.Column, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx].Name
}
