// Package pipe implements the file-based IPC boundary: a per-session set of
// plain-text channels through which external processes inject messages and
// read back focus/selection/mode snapshots.
package pipe

import (
	"os"
	"path/filepath"
	"strings"
)

// Pipe holds the four channel paths of one session. msg_in is inbound;
// the *_out files are overwritten with state snapshots after each settle
// point.
type Pipe struct {
	MsgIn        string `yaml:"msg_in"`
	FocusOut     string `yaml:"focus_out"`
	SelectionOut string `yaml:"selection_out"`
	ModeOut      string `yaml:"mode_out"`
}

// New creates the pipe directory under the session path and truncates all
// four channel files.
func New(sessionPath string) (*Pipe, error) {
	dir := filepath.Join(sessionPath, "pipe")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	p := &Pipe{
		MsgIn:        filepath.Join(dir, "msg_in"),
		FocusOut:     filepath.Join(dir, "focus_out"),
		SelectionOut: filepath.Join(dir, "selection_out"),
		ModeOut:      filepath.Join(dir, "mode_out"),
	}

	for _, path := range []string{p.MsgIn, p.FocusOut, p.SelectionOut, p.ModeOut} {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// WriteFocus overwrites focus_out with the focused node's absolute path.
func (p *Pipe) WriteFocus(path string) error {
	return os.WriteFile(p.FocusOut, []byte(path), 0o644)
}

// WriteSelection overwrites selection_out with the newline-joined selected
// paths.
func (p *Pipe) WriteSelection(paths []string) error {
	return os.WriteFile(p.SelectionOut, []byte(strings.Join(paths, "\n")), 0o644)
}

// WriteMode overwrites mode_out with the active mode name.
func (p *Pipe) WriteMode(name string) error {
	return os.WriteFile(p.ModeOut, []byte(name), 0o644)
}
