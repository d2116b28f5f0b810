// Package rules models permitted-expression normalization policies
// a rule says how a short spoken expression is expected to be normalized
package rules

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Rule is one normalization policy entry
type Rule struct {
	// Original is the short source-language expression, e.g. "sí"
	Original string `json:"original"`

	// Normalizations are the acceptable normalized phrasings in order
	Normalizations []string `json:"normalizations"`

	// SelfValid marks expressions that are acceptable as their own
	// normalization, like sentence-final markers
	SelfValid bool `json:"self_valid"`
}

// Set is an ordered rule collection with case-folded exact lookup
type Set struct {
	rules []Rule
	byKey map[string]int
}

// NewSet builds a Set preserving rule order
// later duplicates of the same folded original win
func NewSet(rs []Rule) Set {
	s := Set{
		rules: append([]Rule(nil), rs...),
		byKey: make(map[string]int, len(rs)),
	}
	for i, r := range s.rules {
		s.byKey[Fold(strings.TrimSpace(r.Original))] = i
	}
	return s
}

// Len returns the number of rules in the set
func (s Set) Len() int { return len(s.rules) }

// All returns the rules in load order
func (s Set) All() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Match finds the rule whose original expression equals text
// comparison is case-insensitive exact match on the trimmed text
func (s Set) Match(text string) (Rule, bool) {
	i, ok := s.byKey[Fold(strings.TrimSpace(text))]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// casers are pooled, a cases.Caser is stateful and not safe for concurrent use
var caserPool = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Fold returns the unicode case-folded form of s for caseless comparison
func Fold(s string) string {
	c := caserPool.Get().(*cases.Caser)
	out := c.String(s)
	caserPool.Put(c)
	return out
}

// EqualFold reports caseless equality of a and b
func EqualFold(a, b string) bool { return Fold(a) == Fold(b) }

// ContainsFold reports whether haystack contains needle caselessly
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
