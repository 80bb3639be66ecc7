// Package view implements the composition engine behind every list and
// detail endpoint: a declarative query pipeline over the relational store.
// A Pipeline is data: an ordered set of filter, search, sort and derived-
// field stages, rendered to SQL only when executed. Pipelines never mutate
// store state; the same pipeline against an unchanged store yields the same
// rows modulo the store's ordering tie-breaks.
package view

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is the minimal query surface the engine needs. Both *pgxpool.Pool
// and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// builder renders with PostgreSQL $n placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// column is a projection entry: a plain column name or a derived expression.
type column struct {
	expr  sq.Sqlizer
	plain string
}

// Pipeline is a declarative select over one base relation with left joins,
// filter predicates, an optional whitelisted text search, and a sort stage.
type Pipeline struct {
	from     string
	columns  []column
	joins    []string
	conds    []sq.Sqlizer
	sortCol  string
	sortDesc bool
	sortKeys map[string]string
	// defaultSort applies when no explicit sort key was given.
	defaultSort string
}

// NewPipeline creates a pipeline over the given relation (optionally
// aliased, e.g. "videos v") projecting the given plain columns.
// Default sort is reverse-chronological by created_at of the base relation.
func NewPipeline(from string, columns ...string) *Pipeline {
	p := &Pipeline{
		from:        from,
		defaultSort: "created_at",
		sortDesc:    true,
	}
	for _, c := range columns {
		p.columns = append(p.columns, column{plain: c})
	}
	return p
}

// Column adds a derived projection expression, e.g. a RelatedCount or
// ViewerHasEdge stage, aliased to the given output name.
func (p *Pipeline) Column(expr sq.Sqlizer, as string) *Pipeline {
	p.columns = append(p.columns, column{expr: sq.Alias(expr, as)})
	return p
}

// LeftJoin adds a left-outer-join clause ("users u ON u.id = v.owner_id").
// Absence of a match yields NULLs, never an error; callers scanning a
// many-to-one join take the single match via nullable scan targets.
func (p *Pipeline) LeftJoin(join string) *Pipeline {
	p.joins = append(p.joins, join)
	return p
}

// Where appends a filter predicate. Predicates are ANDed in order.
func (p *Pipeline) Where(pred sq.Sqlizer) *Pipeline {
	p.conds = append(p.conds, pred)
	return p
}

// Search adds a free-text contains match over the whitelisted columns.
// An empty term is a no-op. Matching is case-insensitive substring; there
// is no index requirement and no ranking.
func (p *Pipeline) Search(term string, columns ...string) *Pipeline {
	if term == "" || len(columns) == 0 {
		return p
	}
	pattern := "%" + term + "%"
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pattern})
	}
	p.conds = append(p.conds, or)
	return p
}

// SortKeys installs the allow-map from external sort keys to SQL columns.
// A requested key outside the map falls back to the default sort.
func (p *Pipeline) SortKeys(keys map[string]string) *Pipeline {
	p.sortKeys = keys
	return p
}

// OrderBy selects the sort stage. An empty or unknown key keeps the
// default (created_at DESC).
func (p *Pipeline) OrderBy(key string, descending bool) *Pipeline {
	if col, ok := p.sortKeys[key]; ok {
		p.sortCol = col
		p.sortDesc = descending
	}
	return p
}

// DefaultSort overrides the column used when no explicit sort key applies.
func (p *Pipeline) DefaultSort(col string, descending bool) *Pipeline {
	p.defaultSort = col
	p.sortDesc = descending
	return p
}

// orderClause renders the sort stage.
func (p *Pipeline) orderClause() string {
	col := p.sortCol
	if col == "" {
		col = p.defaultSort
	}
	dir := "ASC"
	if p.sortDesc {
		dir = "DESC"
	}
	return col + " " + dir
}

// selectBuilder renders the projection query without pagination.
func (p *Pipeline) selectBuilder() sq.SelectBuilder {
	sb := builder.Select()
	for _, c := range p.columns {
		if c.expr != nil {
			sb = sb.Column(c.expr)
		} else {
			sb = sb.Column(c.plain)
		}
	}
	sb = sb.From(p.from)
	for _, j := range p.joins {
		sb = sb.LeftJoin(j)
	}
	for _, cond := range p.conds {
		sb = sb.Where(cond)
	}
	return sb.OrderBy(p.orderClause())
}

// countBuilder renders count(*) over the same filtered set, without sort,
// derived columns or pagination.
func (p *Pipeline) countBuilder() sq.SelectBuilder {
	sb := builder.Select("count(*)").From(p.from)
	for _, j := range p.joins {
		sb = sb.LeftJoin(j)
	}
	for _, cond := range p.conds {
		sb = sb.Where(cond)
	}
	return sb
}

// RowScanner maps one result row to a view object.
type RowScanner[T any] func(rows pgx.Rows) (T, error)

// FetchPage executes the pipeline with offset pagination: a count over the
// filtered set, then the bounded slice. The request must already be
// normalized. A page past the end returns empty items with correct totals.
func FetchPage[T any](ctx context.Context, q Querier, p *Pipeline, req PageRequest, scan RowScanner[T]) (Page[T], error) {
	countSQL, countArgs, err := p.countBuilder().ToSql()
	if err != nil {
		return Page[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return Page[T]{}, fmt.Errorf("count filtered set: %w", err)
	}

	if total == 0 || req.Offset() >= total {
		return NewPage[T](nil, req, total), nil
	}

	items, err := FetchAll(ctx, q, p.selectBuilder().
		Limit(uint64(req.PageSize)).
		Offset(uint64(req.Offset())), scan)
	if err != nil {
		return Page[T]{}, err
	}

	return NewPage(items, req, total), nil
}

// FetchAll executes a rendered select and scans every row.
func FetchAll[T any](ctx context.Context, q Querier, sb sq.SelectBuilder, scan RowScanner[T]) ([]T, error) {
	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Derived-field stages
// ---------------------------------------------------------------------------

// RelatedCount counts rows of a related table pointing at the current row:
// (SELECT count(*) FROM table WHERE fkCol = parentCol).
func RelatedCount(table, fkCol, parentCol string) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf("(SELECT count(*) FROM %s WHERE %s = %s)", table, fkCol, parentCol))
}

// RelatedSum sums a numeric column of a related table over rows pointing at
// the current row. NULL (no related rows) coalesces to zero.
func RelatedSum(table, sumCol, fkCol, parentCol string) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf("COALESCE((SELECT sum(%s) FROM %s WHERE %s = %s), 0)", sumCol, table, fkCol, parentCol))
}

// ViewerHasEdge reports whether the viewer has an engagement edge in the
// given table pointing at the current row. A nil viewer (anonymous read)
// renders a constant FALSE, so personalized flags degrade instead of
// erroring.
func ViewerHasEdge(table, fkCol, parentCol, viewerCol string, viewerID *uuid.UUID) sq.Sqlizer {
	if viewerID == nil {
		return sq.Expr("FALSE")
	}
	return sq.Expr(
		fmt.Sprintf("EXISTS(SELECT 1 FROM %s WHERE %s = %s AND %s = ?)", table, fkCol, parentCol, viewerCol),
		*viewerID,
	)
}
