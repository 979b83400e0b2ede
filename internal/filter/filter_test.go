package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ferret/internal/filter"
	"ferret/internal/node"
)

func entry(relative, absolute string) node.Node {
	return node.Node{RelativePath: relative, AbsolutePath: absolute}
}

func TestFilterKinds(t *testing.T) {
	n := entry("README.md", "/home/user/README.md")

	tests := []struct {
		name   string
		filter filter.Filter
		want   bool
	}{
		{"relative is", filter.New(filter.RelativePathIs, "readme.md", false), true},
		{"relative is, case sensitive", filter.New(filter.RelativePathIs, "readme.md", true), false},
		{"relative is not", filter.New(filter.RelativePathIsNot, "README.md", false), false},
		{"relative starts with", filter.New(filter.RelativePathDoesStartWith, "READ", false), true},
		{"relative does not start with", filter.New(filter.RelativePathDoesNotStartWith, ".", false), true},
		{"relative contains", filter.New(filter.RelativePathDoesContain, "ME.", false), true},
		{"relative does not contain", filter.New(filter.RelativePathDoesNotContain, "xyz", false), true},
		{"relative ends with", filter.New(filter.RelativePathDoesEndWith, ".md", false), true},
		{"relative does not end with", filter.New(filter.RelativePathDoesNotEndWith, ".md", false), false},
		{"absolute is", filter.New(filter.AbsolutePathIs, "/home/user/README.md", false), true},
		{"absolute is not", filter.New(filter.AbsolutePathIsNot, "/tmp/other", false), true},
		{"absolute starts with", filter.New(filter.AbsolutePathDoesStartWith, "/home", false), true},
		{"absolute does not start with", filter.New(filter.AbsolutePathDoesNotStartWith, "/home", false), false},
		{"absolute contains", filter.New(filter.AbsolutePathDoesContain, "user", false), true},
		{"absolute does not contain", filter.New(filter.AbsolutePathDoesNotContain, "user", false), false},
		{"absolute ends with", filter.New(filter.AbsolutePathDoesEndWith, "readme.MD", false), true},
		{"absolute does not end with", filter.New(filter.AbsolutePathDoesNotEndWith, ".go", false), true},
		{"relative glob", filter.New(filter.RelativePathDoesMatchGlob, "*.md", false), true},
		{"relative glob miss", filter.New(filter.RelativePathDoesMatchGlob, "*.go", false), false},
		{"relative glob negated", filter.New(filter.RelativePathDoesNotMatchGlob, "*.go", false), true},
		{"absolute glob", filter.New(filter.AbsolutePathDoesMatchGlob, "/home/*/README.md", false), true},
		{"absolute glob negated", filter.New(filter.AbsolutePathDoesNotMatchGlob, "/home/**", false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(n))
		})
	}
}

func TestInvalidGlobHidesNothing(t *testing.T) {
	n := entry("a.txt", "/tmp/a.txt")
	assert.False(t, filter.New(filter.RelativePathDoesMatchGlob, "[", false).Match(n))
	assert.True(t, filter.New(filter.RelativePathDoesNotMatchGlob, "[", false).Match(n))
}

func TestSetIsConjunctive(t *testing.T) {
	n := entry("main.go", "/src/main.go")

	set := filter.Set{
		filter.New(filter.RelativePathDoesEndWith, ".go", false),
		filter.New(filter.RelativePathDoesStartWith, "main", false),
	}
	assert.True(t, set.Match(n))

	set = append(set, filter.New(filter.RelativePathDoesContain, "xyz", false))
	assert.False(t, set.Match(n))
}

// Adding a filter can only shrink the visible set, never grow it.
func TestFilterMonotonicity(t *testing.T) {
	nodes := []node.Node{
		entry(".git", "/repo/.git"),
		entry("README.md", "/repo/README.md"),
		entry("main.go", "/repo/main.go"),
		entry("main_test.go", "/repo/main_test.go"),
	}

	base := filter.Set{filter.New(filter.RelativePathDoesContain, "m", false)}
	narrowed := append(append(filter.Set{}, base...), filter.New(filter.RelativePathDoesEndWith, ".go", false))

	for _, n := range nodes {
		if narrowed.Match(n) {
			assert.True(t, base.Match(n), "%s visible under narrowed set but not base", n.RelativePath)
		}
	}
}

func TestDefaultHidesDotfiles(t *testing.T) {
	set := filter.Default(false)

	var visible []string
	for _, n := range []node.Node{entry(".git", "/repo/.git"), entry("README.md", "/repo/README.md")} {
		if set.Match(n) {
			visible = append(visible, n.RelativePath)
		}
	}
	assert.Equal(t, []string{"README.md"}, visible)

	assert.Empty(t, filter.Default(true))
}

func TestSetContains(t *testing.T) {
	f := filter.New(filter.RelativePathDoesContain, "x", true)
	set := filter.Set{f}

	assert.True(t, set.Contains(f))
	assert.False(t, set.Contains(filter.New(filter.RelativePathDoesContain, "x", false)))
}
