package queryir

import "fmt"

// ValidationResult contains the portability analysis of a query.
//
// Every parsed tree renders in every dialect. A portable tree also means
// the same thing in every dialect; a non-portable one renders text that a
// SPARQL or Prolog engine would reject or read differently.
type ValidationResult struct {
	// IsPortable is true when no warnings were raised.
	IsPortable bool

	// Warnings lists the non-portable constructs in tree order.
	Warnings []string
}

// Validate checks a query for constructs that do not carry across all
// dialects:
//  1. an empty select list
//  2. a triple predication without exactly two arguments
//  3. a quad predication with fewer than two arguments
//  4. an enumeration anywhere but the right side of IN
//  5. PLUS or MINUS arithmetic, which SPARQL only allows inside FILTER or BIND
//
// Validate is a pure function with no side effects.
func Validate(qb *QueryBlock) ValidationResult {
	v := &validator{warnings: []string{}}
	if qb == nil {
		v.addWarning("nil query")
	} else {
		if len(qb.SelectTerms) == 0 {
			v.addWarning("Empty select list - dialects disagree on what an empty projection returns")
		}
		v.validateExpression(qb.Where, false)
	}
	return ValidationResult{
		IsPortable: len(v.warnings) == 0,
		Warnings:   v.warnings,
	}
}

type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// validateExpression walks expr. inList is true only for the list operand
// of IN.
func (v *validator) validateExpression(expr Expression, inList bool) {
	e, ok := expr.(*OperatorExpression)
	if !ok {
		return
	}

	if e.IsPredication() {
		switch {
		case e.IsQuad && len(e.Arguments) < 2:
			v.addWarning("Quad predication %s has %d argument(s) - quad patterns need at least 2", e.Predicate, len(e.Arguments))
		case !e.IsQuad && len(e.Arguments) != 2:
			v.addWarning("Predication %s has %d argument(s) - SPARQL triple patterns need exactly 2", e.Predicate, len(e.Arguments))
		}
	}

	switch {
	case e.Operator == OpEnumeration && !inList:
		v.addWarning("Enumeration outside IN - SPARQL has no list values")
	case e.Operator.IsValue():
		v.addWarning("Arithmetic '%s' - SPARQL allows arithmetic only inside FILTER or BIND", e.Operator.Keyword())
	}

	for i, arg := range e.Arguments {
		v.validateExpression(arg, e.Operator == OpIn && i == 1)
	}
}
