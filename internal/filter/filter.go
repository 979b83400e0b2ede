// Package filter implements the conjunctive node-filter predicate engine.
// A filter compares one of a node's path forms against a configured input
// string; a set of filters is satisfied only when every filter matches, so
// adding a filter can only shrink the visible set.
package filter

import (
	"strings"

	"github.com/gobwas/glob"

	"ferret/internal/node"
)

// Kind selects the path form and the comparison a filter performs. The
// names double as the YAML representation.
type Kind string

const (
	RelativePathIs                Kind = "RelativePathIs"
	RelativePathIsNot             Kind = "RelativePathIsNot"
	RelativePathDoesStartWith     Kind = "RelativePathDoesStartWith"
	RelativePathDoesNotStartWith  Kind = "RelativePathDoesNotStartWith"
	RelativePathDoesContain       Kind = "RelativePathDoesContain"
	RelativePathDoesNotContain    Kind = "RelativePathDoesNotContain"
	RelativePathDoesEndWith       Kind = "RelativePathDoesEndWith"
	RelativePathDoesNotEndWith    Kind = "RelativePathDoesNotEndWith"
	AbsolutePathIs                Kind = "AbsolutePathIs"
	AbsolutePathIsNot             Kind = "AbsolutePathIsNot"
	AbsolutePathDoesStartWith     Kind = "AbsolutePathDoesStartWith"
	AbsolutePathDoesNotStartWith  Kind = "AbsolutePathDoesNotStartWith"
	AbsolutePathDoesContain       Kind = "AbsolutePathDoesContain"
	AbsolutePathDoesNotContain    Kind = "AbsolutePathDoesNotContain"
	AbsolutePathDoesEndWith       Kind = "AbsolutePathDoesEndWith"
	AbsolutePathDoesNotEndWith    Kind = "AbsolutePathDoesNotEndWith"
	RelativePathDoesMatchGlob     Kind = "RelativePathDoesMatchGlob"
	RelativePathDoesNotMatchGlob  Kind = "RelativePathDoesNotMatchGlob"
	AbsolutePathDoesMatchGlob     Kind = "AbsolutePathDoesMatchGlob"
	AbsolutePathDoesNotMatchGlob  Kind = "AbsolutePathDoesNotMatchGlob"
)

// Kinds lists every filter kind, in a stable order.
var Kinds = []Kind{
	RelativePathIs,
	RelativePathIsNot,
	RelativePathDoesStartWith,
	RelativePathDoesNotStartWith,
	RelativePathDoesContain,
	RelativePathDoesNotContain,
	RelativePathDoesEndWith,
	RelativePathDoesNotEndWith,
	AbsolutePathIs,
	AbsolutePathIsNot,
	AbsolutePathDoesStartWith,
	AbsolutePathDoesNotStartWith,
	AbsolutePathDoesContain,
	AbsolutePathDoesNotContain,
	AbsolutePathDoesEndWith,
	AbsolutePathDoesNotEndWith,
	RelativePathDoesMatchGlob,
	RelativePathDoesNotMatchGlob,
	AbsolutePathDoesMatchGlob,
	AbsolutePathDoesNotMatchGlob,
}

// Filter is one (kind, input, case-sensitivity) predicate. Comparisons are
// case-insensitive unless CaseSensitive is set. Equality between filters is
// structural, which is what removal and toggling rely on.
type Filter struct {
	Kind          Kind   `yaml:"filter"`
	Input         string `yaml:"input"`
	CaseSensitive bool   `yaml:"case_sensitive"`
}

func New(kind Kind, input string, caseSensitive bool) Filter {
	return Filter{Kind: kind, Input: input, CaseSensitive: caseSensitive}
}

// Match reports whether the node satisfies the filter. An unknown kind or
// an invalid glob pattern hides nothing.
func (f Filter) Match(n node.Node) bool {
	subject := n.RelativePath
	if strings.HasPrefix(string(f.Kind), "AbsolutePath") {
		subject = n.AbsolutePath
	}

	input := f.Input
	if !f.CaseSensitive {
		subject = strings.ToLower(subject)
		input = strings.ToLower(input)
	}

	switch f.Kind {
	case RelativePathIs, AbsolutePathIs:
		return subject == input
	case RelativePathIsNot, AbsolutePathIsNot:
		return subject != input
	case RelativePathDoesStartWith, AbsolutePathDoesStartWith:
		return strings.HasPrefix(subject, input)
	case RelativePathDoesNotStartWith, AbsolutePathDoesNotStartWith:
		return !strings.HasPrefix(subject, input)
	case RelativePathDoesContain, AbsolutePathDoesContain:
		return strings.Contains(subject, input)
	case RelativePathDoesNotContain, AbsolutePathDoesNotContain:
		return !strings.Contains(subject, input)
	case RelativePathDoesEndWith, AbsolutePathDoesEndWith:
		return strings.HasSuffix(subject, input)
	case RelativePathDoesNotEndWith, AbsolutePathDoesNotEndWith:
		return !strings.HasSuffix(subject, input)
	case RelativePathDoesMatchGlob, AbsolutePathDoesMatchGlob:
		return matchGlob(input, subject)
	case RelativePathDoesNotMatchGlob, AbsolutePathDoesNotMatchGlob:
		return !matchGlob(input, subject)
	}
	return true
}

func matchGlob(pattern, subject string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(subject)
}

// Set is an ordered conjunction of filters.
type Set []Filter

// Match reports whether the node satisfies every filter in the set.
func (s Set) Match(n node.Node) bool {
	for _, f := range s {
		if !f.Match(n) {
			return false
		}
	}
	return true
}

// Contains reports structural membership.
func (s Set) Contains(f Filter) bool {
	for _, other := range s {
		if other == f {
			return true
		}
	}
	return false
}

// HiddenFilter is the default predicate hiding dotfiles.
var HiddenFilter = New(RelativePathDoesNotStartWith, ".", false)

// Default returns the starting filter set: empty when hidden files should be
// shown, otherwise just the dotfile filter.
func Default(showHidden bool) Set {
	if showHidden {
		return Set{}
	}
	return Set{HiddenFilter}
}
