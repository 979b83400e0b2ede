package app

import (
	"os"
	"path/filepath"
	"strconv"

	"ferret/internal/filter"
	"ferret/internal/input"
	"ferret/internal/msg"
	"ferret/internal/node"
)

// handleExternal applies one external command. Every command is total over
// malformed input: invalid targets are absorbed as no-ops. Terminate is the
// single deliberate failure.
func (a *App) handleExternal(m msg.External, key *input.Key) error {
	switch m.Kind {
	case msg.Explore:
		a.pushOut(msg.Out{Kind: msg.OutExplore})
	case msg.Refresh:
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	case msg.ClearScreen:
		a.pushOut(msg.Out{Kind: msg.OutClearScreen})
	case msg.FocusNext:
		a.focusByRelativeIndex(1)
	case msg.FocusNextByRelativeIndex:
		a.focusByRelativeIndex(m.Index)
	case msg.FocusNextByRelativeIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusByRelativeIndex(n)
		}
	case msg.FocusPrevious:
		a.focusByRelativeIndex(-1)
	case msg.FocusPreviousByRelativeIndex:
		a.focusByRelativeIndex(-m.Index)
	case msg.FocusPreviousByRelativeIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusByRelativeIndex(-n)
		}
	case msg.FocusFirst:
		a.focusByIndex(0)
	case msg.FocusLast:
		if dir := a.directoryBufferMut(); dir != nil {
			a.setFocus(dir, dir.Total-1)
		}
	case msg.FocusPath:
		a.focusPath(m.Input)
	case msg.FocusPathFromInput:
		if buf, ok := a.InputBuffer(); ok {
			a.focusPath(buf)
		}
	case msg.FocusByIndex:
		a.focusByIndex(m.Index)
	case msg.FocusByIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusByIndex(n)
		}
	case msg.FocusByFileName:
		a.focusByFileName(m.Input)
	case msg.ChangeDirectory:
		a.changeDirectory(m.Input)
	case msg.Enter:
		if n := a.FocusedNode(); n != nil {
			a.changeDirectory(n.AbsolutePath)
		}
	case msg.Back:
		if parent := filepath.Dir(a.pwd); parent != a.pwd {
			a.changeDirectory(parent)
		}
	case msg.BufferInput:
		a.bufferInput(m.Input)
	case msg.BufferInputFromKey:
		if key != nil {
			if c, ok := key.Char(); ok {
				a.bufferInput(string(c))
			}
		}
	case msg.SetInputBuffer:
		buf := m.Input
		a.inputBuffer = &buf
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	case msg.ResetInputBuffer:
		a.inputBuffer = nil
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	case msg.SwitchMode:
		a.switchMode(m.Input)
	case msg.Call:
		a.pushOut(msg.Out{Kind: msg.OutCall, Command: m.Command})
	case msg.Select:
		a.selectFocused()
	case msg.UnSelect:
		a.unSelectFocused()
	case msg.ToggleSelection:
		a.toggleSelection()
	case msg.ClearSelection:
		a.selection = nil
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	case msg.AddNodeFilter:
		a.addNodeFilter(m.Filter)
	case msg.RemoveNodeFilter:
		a.removeNodeFilter(m.Filter)
	case msg.ToggleNodeFilter:
		if a.filters.Contains(m.Filter) {
			a.removeNodeFilter(m.Filter)
		} else {
			a.addNodeFilter(m.Filter)
		}
	case msg.AddNodeFilterFromInput:
		if buf, ok := a.InputBuffer(); ok {
			f := m.Filter
			f.Input = buf
			a.addNodeFilter(f)
		}
	case msg.ResetNodeFilters:
		a.filters = filter.Default(a.config.General.ShowHidden)
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	case msg.LogInfo:
		a.logs = append(a.logs, NewLog(LevelInfo, m.Input))
	case msg.LogSuccess:
		a.logs = append(a.logs, NewLog(LevelSuccess, m.Input))
	case msg.LogError:
		a.logs = append(a.logs, NewLog(LevelError, m.Input))
	case msg.PrintResultAndQuit:
		a.pushOut(msg.Out{Kind: msg.OutPrintResultAndQuit})
	case msg.PrintAppStateAndQuit:
		a.pushOut(msg.Out{Kind: msg.OutPrintAppStateAndQuit})
	case msg.Debug:
		a.pushOut(msg.Out{Kind: msg.OutDebug, Path: m.Input})
	case msg.Terminate:
		return ErrTerminated
	}
	return nil
}

// setFocus clamps the focus into [0, total-1] (0 for an empty listing) and
// requests a redraw.
func (a *App) setFocus(dir *node.DirectoryBuffer, focus int) {
	if focus > dir.Total-1 {
		focus = dir.Total - 1
	}
	if focus < 0 {
		focus = 0
	}
	dir.Focus = focus
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) focusByIndex(index int) {
	if dir := a.directoryBufferMut(); dir != nil {
		a.setFocus(dir, index)
	}
}

func (a *App) focusByRelativeIndex(delta int) {
	if dir := a.directoryBufferMut(); dir != nil {
		a.setFocus(dir, dir.Focus+delta)
	}
}

// inputIndex parses the input buffer as an unsigned integer. An unset
// buffer or unparsable text reads as nothing, deliberately without logging.
func (a *App) inputIndex() (int, bool) {
	buf, ok := a.InputBuffer()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(buf)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (a *App) focusByFileName(name string) {
	dir := a.directoryBufferMut()
	if dir == nil {
		return
	}
	for i, n := range dir.Nodes {
		if n.RelativePath == name {
			a.setFocus(dir, i)
			return
		}
	}
}

// focusPath splits the path into parent and file name, changes into the
// parent and focuses the remainder.
func (a *App) focusPath(path string) {
	parent, name := filepath.Split(path)
	if parent == "" || name == "" {
		return
	}
	a.changeDirectory(filepath.Clean(parent))
	a.focusByFileName(name)
}

func (a *App) changeDirectory(dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	a.pwd = dir
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) bufferInput(s string) {
	if a.inputBuffer != nil {
		*a.inputBuffer += s
	} else {
		buf := s
		a.inputBuffer = &buf
	}
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) switchMode(name string) {
	mode, ok := a.config.Mode(name)
	if !ok {
		return
	}
	a.inputBuffer = nil
	a.mode = mode
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) selectFocused() {
	if n := a.FocusedNode(); n != nil {
		a.selection = append(a.selection, *n)
		a.pushOut(msg.Out{Kind: msg.OutRefresh})
	}
}

func (a *App) unSelectFocused() {
	n := a.FocusedNode()
	if n == nil {
		return
	}
	kept := a.selection[:0]
	for _, s := range a.selection {
		if s != *n {
			kept = append(kept, s)
		}
	}
	a.selection = kept
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) toggleSelection() {
	n := a.FocusedNode()
	if n == nil {
		return
	}
	for _, s := range a.selection {
		if s == *n {
			a.unSelectFocused()
			return
		}
	}
	a.selectFocused()
}

func (a *App) addNodeFilter(f filter.Filter) {
	a.filters = append(a.filters, f)
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) removeNodeFilter(f filter.Filter) {
	kept := a.filters[:0]
	for _, other := range a.filters {
		if other != f {
			kept = append(kept, other)
		}
	}
	a.filters = kept
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}
