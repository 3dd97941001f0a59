package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view names used by callers onto qualified SQL
// expressions for a single aliased table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	views   map[string]string
}

// NewProjectionMap creates an empty projection for schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		views:  make(map[string]string),
	}
}

// Project adds a column of the aliased table under the given view name.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.views[view] = qualified
	return p
}

// ProjectExpr adds a SQL expression under the given view name. The
// expression is selected verbatim, so it must reference the table alias
// explicitly.
func (p *ProjectionMap) ProjectExpr(expr, view string) *ProjectionMap {
	p.columns = append(p.columns, expr)
	p.views[view] = expr
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the qualified table reference with its alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view name. Unknown names are returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.views[view]; ok {
		return col
	}
	return view
}

// Lookup resolves a caller-supplied field name against the projection,
// matching view names case-insensitively and falling back to raw column
// names. It reports false for anything not projected.
func (p *ProjectionMap) Lookup(field string) (string, bool) {
	if col, ok := p.views[field]; ok {
		return col, true
	}
	for view, col := range p.views {
		if strings.EqualFold(view, field) {
			return col, true
		}
	}
	qualified := fmt.Sprintf("%s.%s", p.alias, field)
	for _, col := range p.columns {
		if col == qualified {
			return col, true
		}
	}
	return "", false
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the select list as a slice.
func (p *ProjectionMap) ColumnList() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}
