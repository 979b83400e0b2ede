// Package node holds the value types describing one filesystem entry and a
// cached per-directory listing with its focus cursor. Nodes are built by the
// explorer, never by the engine.
package node

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Node is one filesystem path resolved relative to a parent directory.
// Immutable once constructed; equality is structural over all fields.
type Node struct {
	Parent       string `yaml:"parent"`
	RelativePath string `yaml:"relative_path"`
	AbsolutePath string `yaml:"absolute_path"`
	Extension    string `yaml:"extension"`
	IsSymlink    bool   `yaml:"is_symlink"`
	IsDir        bool   `yaml:"is_dir"`
	IsFile       bool   `yaml:"is_file"`
	IsReadonly   bool   `yaml:"is_readonly"`
	MimeEssence  string `yaml:"mime_essence"`
}

// New stats parent/relativePath best-effort and fills in the metadata
// fields. Stat failures leave the corresponding fields at their zero values
// rather than failing: a node for a vanished path is still a valid node.
func New(parent, relativePath string) Node {
	joined := filepath.Join(parent, relativePath)

	absolutePath, err := filepath.Abs(joined)
	if err != nil {
		absolutePath = ""
	} else if resolved, err := filepath.EvalSymlinks(absolutePath); err == nil {
		absolutePath = resolved
	}

	n := Node{
		Parent:       parent,
		RelativePath: relativePath,
		AbsolutePath: absolutePath,
		Extension:    strings.TrimPrefix(filepath.Ext(relativePath), "."),
		MimeEssence:  mimeEssence(relativePath),
	}

	if info, err := os.Lstat(joined); err == nil {
		n.IsSymlink = info.Mode()&os.ModeSymlink != 0
	}
	if info, err := os.Stat(joined); err == nil {
		n.IsDir = info.IsDir()
		n.IsFile = info.Mode().IsRegular()
		n.IsReadonly = info.Mode().Perm()&0200 == 0
	}

	return n
}

// mimeEssence guesses the MIME type from the file extension and strips any
// parameters, e.g. "text/plain; charset=utf-8" becomes "text/plain".
func mimeEssence(path string) string {
	typ := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = typ[:i]
	}
	return strings.TrimSpace(typ)
}

// Compare orders nodes reverse-lexicographically on relative path. The
// explorer sorts every listing with it before handing the buffer to the
// engine.
func Compare(a, b Node) int {
	return strings.Compare(b.RelativePath, a.RelativePath)
}
