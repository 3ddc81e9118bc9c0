package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryHashKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		tree Object
		want string
	}{
		{"empty", Object{}, "d96a092a18621e4cbcabef9242b16f553dc86d20534d593439aafd45a31e49c2"},
		{
			"variable term",
			Object{"kind": String("variable"), "name": String("s")},
			"8554dbc674722d0a5ed6e35dc74f5e4719001e5f59f2f13b6327d343ae6a119a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryHash(tt.tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryHashIgnoresKeyInsertionOrder(t *testing.T) {
	a := NewObject(O("name", String("s")), O("kind", String("variable")))
	b := NewObject(O("kind", String("variable")), O("name", String("s")))
	assert.Equal(t, MustQueryHash(a), MustQueryHash(b))
}

func TestQueryHashDomainSeparation(t *testing.T) {
	// Same bytes under different domains never collide.
	assert.NotEqual(t, MustQueryHash(Object{}), SourceHash("{}"))
}

func TestSourceHash(t *testing.T) {
	got := SourceHash("select (?s) where (p ?s)")
	assert.Equal(t, "3403f1ca508cc931d924e6522df1f33991b78259ce96f2ed78c9966d04cf874f", got)
	assert.Len(t, got, 64)
}

func TestQueryHashError(t *testing.T) {
	_, err := QueryHash(Object{"bad": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QueryHash")
	assert.Panics(t, func() { MustQueryHash(Object{"bad": nil}) })
}
