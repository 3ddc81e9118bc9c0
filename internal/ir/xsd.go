package ir

// XSDNamespace is the XML Schema datatype namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// Datatype identifiers carried by literal terms.
const (
	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDInteger  = XSDNamespace + "integer"
	XSDInt      = XSDNamespace + "int"
	XSDLong     = XSDNamespace + "long"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"
	XSDDate     = XSDNamespace + "date"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDTime     = XSDNamespace + "time"
	XSDAnyURI   = XSDNamespace + "anyURI"
)

// IsNumericDatatype reports whether literals of the datatype are written
// as bare numerals.
func IsNumericDatatype(datatype string) bool {
	switch datatype {
	case XSDInteger, XSDInt, XSDLong, XSDDecimal, XSDFloat, XSDDouble:
		return true
	default:
		return false
	}
}
