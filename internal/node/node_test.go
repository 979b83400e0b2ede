package node_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferret/internal/node"
)

func TestNewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	n := node.New(dir, "notes.txt")

	assert.Equal(t, dir, n.Parent)
	assert.Equal(t, "notes.txt", n.RelativePath)
	assert.Equal(t, "txt", n.Extension)
	assert.True(t, n.IsFile)
	assert.False(t, n.IsDir)
	assert.False(t, n.IsSymlink)
	assert.Equal(t, "text/plain", n.MimeEssence)
	assert.True(t, filepath.IsAbs(n.AbsolutePath))
}

func TestNewDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	n := node.New(dir, "sub")

	assert.True(t, n.IsDir)
	assert.False(t, n.IsFile)
	assert.Equal(t, "", n.Extension)
	assert.Equal(t, "", n.MimeEssence)
}

func TestNewSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.txt")))

	n := node.New(dir, "link.txt")

	assert.True(t, n.IsSymlink)
	assert.True(t, n.IsFile) // stat follows the link
}

func TestNewReadonly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frozen")
	require.NoError(t, os.WriteFile(path, nil, 0o444))

	n := node.New(dir, "frozen")
	assert.True(t, n.IsReadonly)
}

func TestNewMissingPath(t *testing.T) {
	n := node.New(t.TempDir(), "gone.txt")

	assert.False(t, n.IsFile)
	assert.False(t, n.IsDir)
	assert.False(t, n.IsSymlink)
	assert.Equal(t, "txt", n.Extension)
}

func TestCompareIsReverseLexicographic(t *testing.T) {
	nodes := []node.Node{
		{RelativePath: "alpha"},
		{RelativePath: "charlie"},
		{RelativePath: "bravo"},
	}
	sort.Slice(nodes, func(i, j int) bool {
		return node.Compare(nodes[i], nodes[j]) < 0
	})

	assert.Equal(t, "charlie", nodes[0].RelativePath)
	assert.Equal(t, "bravo", nodes[1].RelativePath)
	assert.Equal(t, "alpha", nodes[2].RelativePath)
}

func TestFocusedNode(t *testing.T) {
	buf := node.NewDirectoryBuffer("/tmp", []node.Node{
		{RelativePath: "a"},
		{RelativePath: "b"},
	}, 1)

	require.NotNil(t, buf.FocusedNode())
	assert.Equal(t, "b", buf.FocusedNode().RelativePath)
}

func TestFocusedNodeEmptyBuffer(t *testing.T) {
	buf := node.NewDirectoryBuffer("/tmp", nil, 0)
	assert.Equal(t, 0, buf.Total)
	assert.Nil(t, buf.FocusedNode())

	var missing *node.DirectoryBuffer
	assert.Nil(t, missing.FocusedNode())
}
