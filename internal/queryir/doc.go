// Package queryir defines the syntax tree shared by the clq parsers and
// renderers.
//
// ARCHITECTURE:
//
// The tree sits between the two surface grammars and the four target
// dialects:
//
//	[prefix CL] ─┐                 ┌→ [Common Logic]
//	             ├→ [QueryBlock] ──┼→ [infix CL]
//	[infix CL]  ─┘                 ├→ [SPARQL-like]
//	                               └→ [Prolog]
//
// Both parsers build the same immutable node types. Every renderer reads
// the tree without modifying it, so one parsed query can be rendered any
// number of times, from any number of goroutines.
//
// NODE TYPES:
//
// Expression is a sealed interface implemented by exactly two types:
//   - Term: a resource, literal or variable leaf (comparable with ==)
//   - *OperatorExpression: an operator applied to ordered arguments
//
// A predication (an RDF triple or quad pattern) is an OperatorExpression
// whose Predicate field holds the relation term. Renderers check for a
// predicate before they dispatch on the operator symbol.
//
// Example:
//
//	switch e := expr.(type) {
//	case queryir.Term:
//	    // leaf
//	case *queryir.OperatorExpression:
//	    if e.IsPredication() {
//	        // triple or quad pattern
//	    }
//	}
//
// ERRORS:
//
// Every tokenizer and parser failure is a *SyntaxError carrying a stable
// ErrorCode, the byte offset of the offending token and the query text.
//
// PORTABILITY:
//
// Validate reports constructs that parse fine but that some dialect
// cannot express faithfully, such as n-ary predications in SPARQL.
package queryir
