package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clq/internal/queryir"
)

func TestIsKeywordAt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		kw    string
		pos   int
		want  bool
	}{
		{"followed by space", "select (?s)", "select", 0, true},
		{"followed by bracket", "select(?s)", "select", 0, true},
		{"ignores case", "SeLeCt (?s)", "select", 0, true},
		{"at end of input", "where", "where", 0, true},
		{"prefix of longer word", "selection (?s)", "select", 0, false},
		{"followed by quote", `where"x"`, "where", 0, false},
		{"past end", "whe", "where", 0, false},
		{"negative position", "where", "where", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKeywordAt(tt.query, tt.kw, tt.pos))
		})
	}
}

func TestFindKeyword(t *testing.T) {
	tests := []struct {
		name  string
		query string
		kw    string
		want  int
	}{
		{"plain", "select (?s) where (p ?s)", "where", 12},
		{"glued to brackets", "select (?s)where(p ?s)", "where", 11},
		{"inside variable", "select (?where) where (p ?s)", "where", 16},
		{"inside string", `select (?s) "where" where (p ?s)`, "where", 20},
		{"inside uri", "select (?s) <http://where> where (p ?s)", "where", 27},
		{"apostrophe inside word", "select (ex:O'Brien ?s) where (ex:p ?s)", "where", 23},
		{"apostrophe inside string", `select (?s) where (ex:p "it's")`, "where", 12},
		{"suffix of word", "select (?s) nowhere", "where", -1},
		{"local name", "select (?s) ex:from where (p ?s)", "from", -1},
		{"from glued to bracket", "select (?s) FROM(<g>) where (p ?s)", "from", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindKeyword(tt.query, tt.kw, len("select"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindKeywordErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		code   queryir.ErrorCode
		offset int
	}{
		{"unterminated string", `select ("unterminated) where (ex:p ?s)`, queryir.ErrUnterminatedString, 8},
		{"unterminated string at end", `select (?s) "where`, queryir.ErrUnterminatedString, 12},
		{"unterminated uri", "select (?s) <http://where (p ?s)", queryir.ErrUnterminatedURI, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindKeyword(tt.query, "where", len("select"))
			var se *queryir.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.offset, se.Offset)
		})
	}
}
