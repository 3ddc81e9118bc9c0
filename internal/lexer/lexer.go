package lexer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/clq/internal/queryir"
)

// reserved maps lower-cased reserved words to their operator symbols.
var reserved = map[string]string{
	"and":   string(queryir.OpAnd),
	"or":    string(queryir.OpOr),
	"not":   string(queryir.OpNot),
	"in":    string(queryir.OpIn),
	"true":  string(queryir.OpTrue),
	"false": string(queryir.OpFalse),
	"=":     string(queryir.OpEqual),
	"<":     string(queryir.OpLess),
	">":     string(queryir.OpGreater),
	"<=":    string(queryir.OpLessEq),
	">=":    string(queryir.OpGreaterEq),
	"!=":    string(queryir.OpNotEqual),
	"+":     string(queryir.OpPlus),
	"-":     string(queryir.OpMinus),
}

var numberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Tokenize splits text into tokens.
func Tokenize(text string) ([]Token, error) {
	return TokenizeRange(text, 0, len(text))
}

// TokenizeRange tokenizes query[start:end]. Offsets and errors refer to
// positions in the whole query.
func TokenizeRange(query string, start, end int) ([]Token, error) {
	l := &lexer{src: query, cur: start, end: end}
	return l.scan()
}

type lexer struct {
	src    string
	cur    int
	end    int
	tokens []Token
}

func (l *lexer) scan() ([]Token, error) {
	l.tokens = []Token{}
	for {
		l.skipSeparators()
		if l.cur >= l.end {
			return l.tokens, nil
		}
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isBracket(c byte) bool {
	return c == '(' || c == ')' || c == '[' || c == ']'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == ',' || isBracket(c)
}

func (l *lexer) skipSeparators() {
	for l.cur < l.end && (isSpace(l.src[l.cur]) || l.src[l.cur] == ',') {
		l.cur++
	}
}

func (l *lexer) add(kind Kind, text string, offset int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Offset: offset})
}

func (l *lexer) fail(code queryir.ErrorCode, offset int, format string, args ...any) error {
	return queryir.NewSyntaxError(code, offset, l.src, format, args...)
}

func (l *lexer) scanToken() error {
	start := l.cur
	c := l.src[start]
	switch {
	case isBracket(c):
		l.cur++
		l.add(Bracket, string(c), start)
		return nil
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '<' && l.startsURI():
		return l.scanURI()
	case c == '?':
		name := l.scanVariable()
		if name == "" {
			return l.fail(queryir.ErrUnrecognizedTerm, start, "variable has no name")
		}
		l.add(Variable, name, start)
		return nil
	default:
		return l.classify(l.scanWord(), start)
	}
}

// startsURI reports whether the '<' at the cursor opens a URI rather than
// being the less-than word.
func (l *lexer) startsURI() bool {
	next := l.cur + 1
	if next >= l.end {
		return false
	}
	c := l.src[next]
	return !isSpace(c) && c != '='
}

func (l *lexer) scanString(quote byte) error {
	start := l.cur
	closing := strings.IndexByte(l.src[start+1:l.end], quote)
	if closing < 0 {
		return l.fail(queryir.ErrUnterminatedString, start, "string starting with %c is never closed", quote)
	}
	l.add(String, l.src[start+1:start+1+closing], start)
	l.cur = start + closing + 2
	return nil
}

func (l *lexer) scanURI() error {
	start := l.cur
	closing := strings.IndexByte(l.src[start+1:l.end], '>')
	if closing < 0 {
		return l.fail(queryir.ErrUnterminatedURI, start, "URI starting with < is never closed")
	}
	l.add(URI, l.src[start+1:start+1+closing], start)
	l.cur = start + closing + 2
	return nil
}

// scanVariable consumes '?' and the name after it. A name is letters,
// digits, '.', '_' and '-'; the first other character starts the next
// token.
func (l *lexer) scanVariable() string {
	l.cur++
	start := l.cur
	for l.cur < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.cur:l.end])
		if !isVariableRune(r) {
			break
		}
		l.cur += size
	}
	return l.src[start:l.cur]
}

func isVariableRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

func (l *lexer) scanWord() string {
	start := l.cur
	for l.cur < l.end && !isDelimiter(l.src[l.cur]) {
		l.cur++
	}
	return l.src[start:l.cur]
}

func (l *lexer) classify(word string, offset int) error {
	if sym, ok := reserved[strings.ToLower(word)]; ok {
		l.add(ReservedWord, sym, offset)
		return nil
	}
	if numberPattern.MatchString(word) {
		l.add(Number, word, offset)
		return nil
	}
	if strings.Contains(word, ":") {
		l.add(QName, word, offset)
		return nil
	}
	return l.fail(queryir.ErrUnrecognizedTerm, offset, "unrecognized term %q", word)
}
