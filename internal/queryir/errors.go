package queryir

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes syntax errors. Codes are stable and safe to match
// on in scripts and scenario files.
type ErrorCode string

const (
	// Tokenizer
	ErrUnterminatedString ErrorCode = "UNTERMINATED_STRING"
	ErrUnterminatedURI    ErrorCode = "UNTERMINATED_URI"
	ErrUnrecognizedTerm   ErrorCode = "UNRECOGNIZED_TERM"

	// Query assembly
	ErrMissingSelect       ErrorCode = "MISSING_SELECT"
	ErrMissingSelectParens ErrorCode = "MISSING_SELECT_PARENS"
	ErrIllegalSelectTerm   ErrorCode = "ILLEGAL_SELECT_TERM"
	ErrMissingWhere        ErrorCode = "MISSING_WHERE"
	ErrFromAfterWhere      ErrorCode = "FROM_AFTER_WHERE"
	ErrEmptyWhere          ErrorCode = "EMPTY_WHERE"

	// Expression structure
	ErrEnumerationForBoolean ErrorCode = "ENUMERATION_FOR_BOOLEAN"
	ErrOperatorForTerm       ErrorCode = "OPERATOR_FOR_TERM"
	ErrTermForBoolean        ErrorCode = "TERM_FOR_BOOLEAN"
	ErrBooleanInValue        ErrorCode = "BOOLEAN_IN_VALUE_CONTEXT"
	ErrValueInBoolean        ErrorCode = "VALUE_IN_BOOLEAN_CONTEXT"
	ErrIllegalPredicate      ErrorCode = "ILLEGAL_PREDICATE"
	ErrDanglingConnective    ErrorCode = "DANGLING_CONNECTIVE"
	ErrMissingOperand        ErrorCode = "MISSING_OPERAND"
	ErrMissingConnective     ErrorCode = "MISSING_CONNECTIVE"
	ErrUnbalancedBracket     ErrorCode = "UNBALANCED_BRACKET"
	ErrEmptyExpression       ErrorCode = "EMPTY_EXPRESSION"
	ErrNestedExpression      ErrorCode = "NESTED_EXPRESSION"
	ErrUnsupportedFunction   ErrorCode = "UNSUPPORTED_FUNCTION"
	ErrMalformedConstant     ErrorCode = "MALFORMED_CONSTANT"
	ErrArity                 ErrorCode = "ARITY"
	ErrDepthExceeded         ErrorCode = "DEPTH_EXCEEDED"
)

// ErrorCodes lists every error code in declaration order.
func ErrorCodes() []ErrorCode {
	return []ErrorCode{
		ErrUnterminatedString, ErrUnterminatedURI, ErrUnrecognizedTerm,
		ErrMissingSelect, ErrMissingSelectParens, ErrIllegalSelectTerm,
		ErrMissingWhere, ErrFromAfterWhere, ErrEmptyWhere,
		ErrEnumerationForBoolean, ErrOperatorForTerm, ErrTermForBoolean,
		ErrBooleanInValue, ErrValueInBoolean, ErrIllegalPredicate,
		ErrDanglingConnective, ErrMissingOperand, ErrMissingConnective,
		ErrUnbalancedBracket, ErrEmptyExpression, ErrNestedExpression,
		ErrUnsupportedFunction, ErrMalformedConstant, ErrArity,
		ErrDepthExceeded,
	}
}

// SyntaxError is the single error kind for tokenizer and parser failures.
type SyntaxError struct {
	// Code identifies the failure.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Offset is the byte offset of the offending token in Query, or -1
	// when no position applies.
	Offset int

	// Query is the full query text, used to point at the failure.
	Query string
}

// NewSyntaxError creates a SyntaxError.
func NewSyntaxError(code ErrorCode, offset int, query, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Query:   query,
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var msg strings.Builder
	msg.WriteString(string(e.Code))
	msg.WriteString(": ")
	msg.WriteString(e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(&msg, " (offset %d)", e.Offset)
	}
	if excerpt := e.excerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

// excerpt shows up to contextLen bytes either side of the offset with a
// caret under the offending byte.
func (e *SyntaxError) excerpt() string {
	if e.Query == "" || e.Offset < 0 || e.Offset > len(e.Query) {
		return ""
	}
	const contextLen = 40

	start := max(e.Offset-contextLen, 0)
	end := min(e.Offset+contextLen, len(e.Query))

	excerpt := e.Query[start:end]
	caret := e.Offset - start
	if start > 0 {
		excerpt = "..." + excerpt
		caret += 3
	}
	if end < len(e.Query) {
		excerpt += "..."
	}

	var b strings.Builder
	b.WriteString(excerpt)
	b.WriteString("\n  ")
	b.WriteString(strings.Repeat(" ", caret))
	b.WriteByte('^')
	return b.String()
}

// WithQuery returns a copy of the error attached to the given query text,
// shifting the offset by base. Used when a clause was parsed on its own.
func (e *SyntaxError) WithQuery(query string, base int) *SyntaxError {
	out := *e
	out.Query = query
	if out.Offset >= 0 {
		out.Offset += base
	}
	return &out
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// ErrorCodeOf returns the code of a wrapped *SyntaxError, or "" if err is
// not one.
func ErrorCodeOf(err error) ErrorCode {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
