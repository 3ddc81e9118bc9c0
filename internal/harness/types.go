package harness

// Record is one rendering as read back from the history store.
type Record struct {
	Seq     int64  `json:"seq"`
	ID      string `json:"id"`
	Dialect string `json:"dialect"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation and assertion
	// matched.
	Pass bool `json:"pass"`

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Hash is the tree hash. Empty when the query failed to parse.
	Hash string `json:"hash,omitempty"`

	// Outputs maps dialect names to renderings.
	Outputs map[string]string `json:"outputs,omitempty"`

	// Warnings are the tree's portability warnings.
	Warnings []string `json:"warnings,omitempty"`

	// Records are the stored renderings in seq order.
	Records []Record `json:"records,omitempty"`

	// ErrorCode and ErrorOffset describe the syntax error, if any.
	ErrorCode   string `json:"error_code,omitempty"`
	ErrorOffset int    `json:"error_offset,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Errors:   []string{},
		Outputs:  make(map[string]string),
		Warnings: []string{},
		Records:  []Record{},
	}
}

// AddError adds a mismatch message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
