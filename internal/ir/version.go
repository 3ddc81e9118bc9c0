package ir

// Version constants for the tree encoding and the translator.
const (
	// TreeVersion is the canonical tree encoding version.
	TreeVersion = "1"

	// TranslatorVersion is the clq translator version.
	TranslatorVersion = "0.1.0"
)
