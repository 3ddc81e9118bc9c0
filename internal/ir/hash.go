package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix leaves room for
// changing the tree encoding without colliding with older hashes.
const (
	DomainQuery  = "clq/query/v1"
	DomainSource = "clq/source/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// QueryHash hashes the canonical encoding of a query tree. Two queries
// that parse to the same tree hash identically regardless of surface
// syntax, whitespace or prefix/infix form.
func QueryHash(tree Object) (string, error) {
	canonical, err := MarshalCanonical(tree)
	if err != nil {
		return "", fmt.Errorf("QueryHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainQuery, canonical), nil
}

// SourceHash hashes raw query text.
func SourceHash(text string) string {
	return hashWithDomain(DomainSource, []byte(text))
}

// MustQueryHash is like QueryHash but panics on error.
func MustQueryHash(tree Object) string {
	h, err := QueryHash(tree)
	if err != nil {
		panic(err)
	}
	return h
}
