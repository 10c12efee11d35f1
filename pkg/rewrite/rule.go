package rewrite

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultReceiver is the object the HTTP wrapper is called on
	DefaultReceiver = "api"

	// DefaultPrefix is the endpoint prefix that gets stripped
	DefaultPrefix = "/api/"
)

// ErrInvalidRule is returned when a Rule cannot be compiled into a pattern
var ErrInvalidRule = errors.Base("invalid rule")

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	receiverPattern   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// DefaultVerbs returns the HTTP method names rewritten by default
func DefaultVerbs() []string {
	return []string{"get", "post", "put", "delete"}
}

// Rule defines a single prefix strip over HTTP wrapper calls shaped like
// <Receiver>.<verb>('<Prefix>...
type Rule struct {
	// Receiver is the object the wrapper methods are called on (api, axios, this.http)
	Receiver string

	// Verbs are the method names whose first argument is rewritten
	Verbs []string

	// Prefix is the literal path prefix removed from the first argument.
	// It must start and end with a slash; the leading slash is kept.
	Prefix string
}

// DefaultRule returns the api.<verb>('/api/ rule
func DefaultRule() Rule {
	return Rule{
		Receiver: DefaultReceiver,
		Verbs:    DefaultVerbs(),
		Prefix:   DefaultPrefix,
	}
}

// Validate checks that the rule can be compiled
func (r Rule) Validate() error {
	if !receiverPattern.MatchString(r.Receiver) {
		return errors.Errorf("%w: receiver %q is not an identifier", ErrInvalidRule, r.Receiver)
	}

	if len(r.Verbs) == 0 {
		return errors.Errorf("%w: at least one verb is required", ErrInvalidRule)
	}

	seen := make(map[string]bool, len(r.Verbs))
	for i, verb := range r.Verbs {
		if !identifierPattern.MatchString(verb) {
			return errors.Errorf("%w: verb %d (%q) is not an identifier", ErrInvalidRule, i, verb)
		}
		if seen[verb] {
			return errors.Errorf("%w: duplicate verb %q", ErrInvalidRule, verb)
		}
		seen[verb] = true
	}

	if len(r.Prefix) < 3 || !strings.HasPrefix(r.Prefix, "/") || !strings.HasSuffix(r.Prefix, "/") {
		return errors.Errorf("%w: prefix %q must look like /segment/", ErrInvalidRule, r.Prefix)
	}
	if strings.ContainsAny(r.Prefix, "'\n\r") {
		return errors.Errorf("%w: prefix %q contains a quote or line break", ErrInvalidRule, r.Prefix)
	}

	return nil
}

// expression builds the match expression and its replacement template.
// Group 1 is the receiver, group 2 the verb.
func (r Rule) expression() (string, string) {
	verbs := make([]string, len(r.Verbs))
	for i, verb := range r.Verbs {
		verbs[i] = regexp.QuoteMeta(verb)
	}

	expr := "(" + regexp.QuoteMeta(r.Receiver) + `)\.(` + strings.Join(verbs, "|") + `)\('` + regexp.QuoteMeta(r.Prefix)
	return expr, "${1}.${2}('/"
}
