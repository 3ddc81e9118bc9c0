package cli

import (
	"errors"

	"github.com/roach88/clq/internal/queryir"
)

// SyntaxErrorDetails is the JSON error detail for a query that failed to
// tokenize or parse.
type SyntaxErrorDetails struct {
	Code   string `json:"code"`
	Offset int    `json:"offset"`
}

// reportTranslateError reports err and returns the ExitError for it.
// Syntax errors exit with ExitFailure; anything else is a command error.
func reportTranslateError(f *OutputFormatter, err error) error {
	var se *queryir.SyntaxError
	if errors.As(err, &se) {
		message := se.Error()
		if f.JSON() {
			message = se.Message
		}
		return f.Fail(ExitFailure, ErrCodeSyntax, message,
			SyntaxErrorDetails{Code: string(se.Code), Offset: se.Offset}, err)
	}
	return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
}
