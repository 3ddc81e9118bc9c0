// Package parser builds query trees from Common Logic query text.
//
// Two grammars share one tree:
//
//   - prefix (default): fully parenthesized, connective first, as in
//     (and (ex:name ?s ?o) (= ?o "Fred"))
//   - infix: connectives between operands, as in
//     (ex:name ?s ?o) and (?o = "Fred")
//
// The infix grammar has no operator precedence. Runs of the same
// connective collect into one node; a change of connective closes the
// node built so far and makes it the first operand of the next, so
// "a and b or c" groups as "(a and b) or c".
//
// Each grammar is its own set of functions over shared helpers rather
// than one parser with a mode flag threaded through it.
package parser
