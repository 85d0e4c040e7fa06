package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/autoform/autoform/internal/catalog"
	"github.com/autoform/autoform/internal/relation"
	"github.com/autoform/autoform/internal/schema"
	"github.com/autoform/autoform/internal/widget"
)

// Coordinator runs one "generate form" invocation: it expands the foreign-key
// graph from a root table, plans widgets for the root and every table
// discovered along the way, and assembles the resulting forest. Nothing is
// shared between invocations; the visited set is rebuilt every call.
type Coordinator struct {
	cat     catalog.Catalog
	builder *relation.Builder
	planner *widget.Planner
	log     *slog.Logger
}

// New creates a Coordinator over the given catalog and host heuristic.
func New(cat catalog.Catalog, h widget.Heuristic, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		cat:     cat,
		builder: relation.New(cat, log),
		planner: widget.NewPlanner(h, log),
		log:     log,
	}
}

// GenerateForm builds the relation forest rooted at the given table. The
// traversal is an explicit worklist over datasource identity keys: a table
// already materialized is never fetched or added again, which also terminates
// cyclic and self-referencing schemas. Any catalog failure aborts the whole
// invocation; a partial forest is never returned.
func (c *Coordinator) GenerateForm(ctx context.Context, rootTable string) (*schema.RelationForest, error) {
	visited := map[string]bool{c.cat.Identity(rootTable): true}
	visitedOrder := []string{c.cat.Identity(rootTable)}

	queue := []string{rootTable}
	var plans []schema.TablePlan

	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]

		edges, referenced, err := c.builder.Expand(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", table, err)
		}

		plan, err := c.planTable(ctx, table, edges)
		if err != nil {
			return nil, fmt.Errorf("planning %s: %w", table, err)
		}
		plans = append(plans, plan)

		for _, ref := range referenced {
			key := c.cat.Identity(ref)
			if visited[key] {
				c.log.Debug("table already materialized, skipping", "table", ref, "key", key)
				continue
			}
			visited[key] = true
			visitedOrder = append(visitedOrder, key)
			queue = append(queue, ref)
		}
	}

	forest := &schema.RelationForest{
		Root:        plans[0],
		Referenced:  plans[1:],
		VisitedKeys: visitedOrder,
	}

	c.log.Info("form generated",
		"root", rootTable,
		"referenced_tables", len(forest.Referenced),
	)
	return forest, nil
}

// planTable computes the not-null set first, then plans every column of the
// table against it.
func (c *Coordinator) planTable(ctx context.Context, table string, edges []schema.ForeignKeyEdge) (schema.TablePlan, error) {
	cols, err := c.cat.Columns(ctx, table)
	if err != nil {
		return schema.TablePlan{}, err
	}
	if len(cols) == 0 {
		return schema.TablePlan{}, fmt.Errorf("table %s not found in catalog", table)
	}

	notNull, err := c.cat.NotNullOrdinals(ctx, table)
	if err != nil {
		return schema.TablePlan{}, err
	}

	plan := c.planner.Plan(table, cols, notNull, edges)
	plan.Key = c.cat.Identity(table)
	return plan, nil
}
