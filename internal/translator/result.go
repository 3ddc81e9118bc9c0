package translator

import (
	"github.com/roach88/clq/internal/queryir"
	"github.com/roach88/clq/internal/render"
)

// Output is one rendering of a query.
type Output struct {
	Dialect render.Dialect
	Text    string
}

// Result is a parsed query and its renderings.
type Result struct {
	Query      string
	Tree       *queryir.QueryBlock
	Hash       string
	Validation queryir.ValidationResult
	Outputs    []Output
}

// Output returns the rendering for dialect d.
func (r *Result) Output(d render.Dialect) (string, bool) {
	for _, o := range r.Outputs {
		if o.Dialect == d {
			return o.Text, true
		}
	}
	return "", false
}
