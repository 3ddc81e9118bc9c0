package lexer

import "strings"

// IsKeywordAt reports whether the clause keyword kw (select, from, where)
// starts at pos as a whole word, ignoring case.
func IsKeywordAt(query, kw string, pos int) bool {
	end := pos + len(kw)
	if pos < 0 || end > len(query) || !strings.EqualFold(query[pos:end], kw) {
		return false
	}
	return end == len(query) || isDelimiter(query[end])
}

// FindKeyword returns the offset of the first clause keyword kw at or
// after from, or -1.
//
// The text is walked token by token the way Tokenize reads it, so kw
// inside a string, URI, variable name or longer word is not a match. A
// quote or '<' opens a literal only where a token starts. An unterminated
// string or URI met before kw is returned as the tokenizer's error.
func FindKeyword(query, kw string, from int) (int, error) {
	l := &lexer{src: query, cur: from, end: len(query)}
	for {
		l.skipSeparators()
		if l.cur >= l.end {
			return -1, nil
		}
		start := l.cur
		c := l.src[start]
		switch {
		case isBracket(c):
			l.cur++
		case c == '"' || c == '\'':
			if err := l.scanString(c); err != nil {
				return -1, err
			}
		case c == '<' && l.startsURI():
			if err := l.scanURI(); err != nil {
				return -1, err
			}
		case c == '?':
			l.scanVariable()
		case IsKeywordAt(query, kw, start):
			return start, nil
		default:
			l.scanWord()
		}
	}
}
