// Package rewrite strips an endpoint prefix from the first argument of HTTP
// wrapper calls such as api.get('/api/users').
package rewrite

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// Result contains the outcome of rewriting one piece of content
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of calls that were rewritten
	ReplacementCount int

	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting
	ModifiedContent []byte
}

// Rewriter applies a compiled Rule to content. It is safe for concurrent use.
type Rewriter struct {
	rule        Rule
	pattern     *regexp.Regexp
	replacement []byte
}

// NewRewriter validates and compiles rule
func NewRewriter(rule Rule) (*Rewriter, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	expr, replacement := rule.expression()
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", expr, err)
	}

	return &Rewriter{
		rule:        rule,
		pattern:     pattern,
		replacement: []byte(replacement),
	}, nil
}

// Rule returns the rule the rewriter was built from
func (r *Rewriter) Rule() Rule {
	return r.rule
}

// Pattern returns the compiled match expression
func (r *Rewriter) Pattern() string {
	return r.pattern.String()
}

// Count reports how many calls Apply would rewrite
func (r *Rewriter) Count(content []byte) int {
	return len(r.pattern.FindAllIndex(content, -1))
}

// Apply rewrites every non-overlapping match in content. Bytes outside the
// matches are left untouched; content without matches is returned as is.
func (r *Rewriter) Apply(content []byte) *Result {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	count := r.Count(content)
	if count == 0 {
		return result
	}

	result.ModifiedContent = r.pattern.ReplaceAll(content, r.replacement)
	result.ReplacementCount = count
	result.WasModified = true
	return result
}
