package store

import (
	"fmt"

	"github.com/roach88/clq/internal/ir"
	"github.com/roach88/clq/internal/queryir"
)

// Translation is one recorded rendering of a parsed query.
type Translation struct {
	ID                string
	Seq               int64
	QueryHash         string
	Source            string
	Infix             bool
	Quads             bool
	Dialect           string
	Compact           bool
	Output            string
	Tree              ir.Object
	TranslatorVersion string
	TreeVersion       string
}

// NewTranslation builds a record for qb rendered in dialect. ID and Seq
// are assigned by WriteTranslation.
func NewTranslation(qb *queryir.QueryBlock, source string, infix, quads bool, dialect string, compact bool, output string) (Translation, error) {
	tree := queryir.ToIR(qb)
	hash, err := ir.QueryHash(tree)
	if err != nil {
		return Translation{}, fmt.Errorf("new translation: %w", err)
	}
	return Translation{
		QueryHash:         hash,
		Source:            source,
		Infix:             infix,
		Quads:             quads,
		Dialect:           dialect,
		Compact:           compact,
		Output:            output,
		Tree:              tree,
		TranslatorVersion: ir.TranslatorVersion,
		TreeVersion:       ir.TreeVersion,
	}, nil
}
