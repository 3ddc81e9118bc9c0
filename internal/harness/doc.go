// Package harness runs translation scenarios.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: query3_sparql
//	description: "Comparison becomes a bare filter clause"
//	query: select (?s ?o) where (and (ex:name ?s ?o) (= ?o "Fred"))
//	infix: false
//	quads: false
//	compact: false
//	expect:
//	  sparql: |-
//	    select ?s ?o
//	    where { ?s ex:name ?o .
//	    ?o = "Fred" . }
//	assertions:
//	  - type: portable
//	    value: true
//
// A scenario either expects renderings (expect) or a syntax error
// (error, optionally error_offset), never both.
//
// # Assertion Types
//
//   - portable: the tree validates as portable (value true) or not (value false)
//   - warning_contains: some portability warning contains text
//   - output_contains: the rendering in dialect contains text
//   - hash: the tree hash equals value
//
// # Deterministic Execution
//
// Each run translates into all dialects, records every rendering in a fresh
// in-memory store with fixed record IDs ("<name>-<dialect>"), and reads the
// records back. Snapshot encodes the outcome as canonical JSON for golden
// comparison, so identical scenarios produce identical bytes.
package harness
