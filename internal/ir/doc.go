// Package ir provides the value layer shared by the clq packages.
//
// It holds the constrained JSON value types used to encode query trees,
// RFC 8785 canonical marshaling, domain-separated hashing, and the XML
// Schema datatype identifiers that literal terms carry.
//
// ir imports nothing internal. Every other package may import it.
//
// Key design constraints:
//   - NO float types anywhere; numeric literals stay strings in query trees
//   - NO null in canonical output; absent fields are omitted
//   - All JSON keys use snake_case
package ir
