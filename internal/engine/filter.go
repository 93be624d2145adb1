package engine

import (
	"strings"

	"github.com/Knetic/govaluate"

	"reportview/internal/model"
)

// applyFilters restarts from the full row collection on every call. With
// nothing active it returns the arena's own slice, so an empty filter state
// is the identity (same membership, same order, same backing array).
func applyFilters(t *model.Table, f FilterState, expr *exprEval) []model.Row {
	if f.Empty() && expr == nil {
		return t.Rows
	}
	search := strings.ToLower(f.Search)
	out := make([]model.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !rowMatches(t, r, search, f.Columns, expr) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// rowMatches ANDs the search predicate, every column equality constraint,
// and the expression. Expression evaluation errors count as no-match; a
// broken expression never takes the whole view down.
func rowMatches(t *model.Table, r model.Row, search string, columns map[string]string, expr *exprEval) bool {
	if search != "" {
		hit := false
		for _, cell := range r.Cells {
			if strings.Contains(strings.ToLower(cell), search) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for col, want := range columns {
		if want == "" {
			continue
		}
		if t.Value(r, col) != want {
			return false
		}
	}
	if expr != nil && !expr.match(t, r) {
		return false
	}
	return true
}

// exprEval wraps a compiled govaluate expression. Cell values are exposed
// under the exact column name (bracket syntax for names with spaces, e.g.
// [Display Name]) and under an underscore alias; numeric-looking cells are
// passed as float64 so comparisons work naturally.
type exprEval struct {
	expr *govaluate.EvaluableExpression
}

func newExprEval(expr string) (*exprEval, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, err
	}
	return &exprEval{expr: e}, nil
}

func (e *exprEval) match(t *model.Table, r model.Row) bool {
	params := make(map[string]any, 2*len(t.Columns))
	for i, col := range t.Columns {
		var val any = ""
		if i < len(r.Cells) {
			cell := r.Cells[i]
			if f, ok := parseNumber(cell); ok {
				val = f
			} else {
				val = cell
			}
		}
		params[col] = val
		if alias := strings.ReplaceAll(col, " ", "_"); alias != col {
			params[alias] = val
		}
	}
	result, err := e.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}
