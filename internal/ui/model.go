// Package ui is the executor/renderer: a bubbletea program that owns the
// engine, feeds it key events and pipe messages, drains its scheduler after
// every event and carries out the resulting effects.
package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"ferret/internal/app"
	"ferret/internal/explorer"
	"ferret/internal/input"
	"ferret/internal/log"
	"ferret/internal/msg"
	"ferret/internal/node"
	"ferret/internal/pipe"
	"ferret/internal/sched"
)

// Pipe-injected messages run below interactive input.
const pipePriority = 2

// Outcome is what the program leaves behind for main: text to print on
// stdout and the process exit code.
type Outcome struct {
	Output   string
	ExitCode int
}

type Model struct {
	app      *app.App
	watcher  *pipe.Watcher
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	outcome  Outcome

	// pwd of the most recently scheduled exploration; a refresh for any
	// other directory means the pane has no listing yet.
	explored string
}

// pipeMsg delivers one parsed msg_in message, or reports channel closure.
type pipeMsg struct {
	m  msg.External
	ok bool
}

// exploredMsg delivers a finished directory listing.
type exploredMsg struct {
	parent string
	buffer node.DirectoryBuffer
	err    error
}

type callDoneMsg struct {
	err error
}

// New wraps the engine and schedules the initial exploration of its working
// directory.
func New(a *app.App) *Model {
	a.Enqueue(sched.NewTask(0, msg.External{Kind: msg.Explore}, nil))

	watcher, err := pipe.NewWatcher(a.Pipe().MsgIn)
	if err != nil {
		log.Error("cannot watch msg_in", err)
		watcher = nil
	}

	return &Model{
		app:      a,
		watcher:  watcher,
		explored: a.Pwd(),
	}
}

// Outcome reports the result of the finished session.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

func (m *Model) Init() tea.Cmd {
	cmds := m.settle()
	if m.watcher != nil {
		cmds = append(cmds, m.listenPipe())
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenPipe() tea.Cmd {
	return func() tea.Msg {
		ext, ok := <-m.watcher.Messages()
		return pipeMsg{m: ext, ok: ok}
	}
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch event := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = event.Width
		m.height = event.Height
		m.resizeViewport()
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		key := input.FromTea(event)
		m.app.Enqueue(sched.NewTask(0, msg.HandleKey{Key: key}, nil))
		return m, tea.Batch(m.settle()...)

	case pipeMsg:
		if !event.ok {
			return m, nil
		}
		m.app.Enqueue(sched.NewTask(pipePriority, event.m, nil))
		cmds := append(m.settle(), m.listenPipe())
		return m, tea.Batch(cmds...)

	case exploredMsg:
		if event.err != nil {
			m.app.Enqueue(sched.NewTask(0, msg.External{Kind: msg.LogError, Input: event.err.Error()}, nil))
		} else {
			m.app.Enqueue(sched.NewTask(0, msg.AddDirectory{Parent: event.parent, Buffer: event.buffer}, nil))
			m.app.RefreshSelection()
		}
		return m, tea.Batch(m.settle()...)

	case callDoneMsg:
		if event.err != nil {
			m.app.Enqueue(sched.NewTask(0, msg.External{Kind: msg.LogError, Input: event.err.Error()}, nil))
			return m, tea.Batch(m.settle()...)
		}
		return m, nil
	}

	return m, nil
}

// settle drains the scheduler until it is empty, then carries out the
// accumulated effects in FIFO order and rewrites the out-pipes.
func (m *Model) settle() []tea.Cmd {
	var cmds []tea.Cmd

	for {
		stepped, err := m.app.Step()
		if err != nil {
			m.outcome = Outcome{ExitCode: 2}
			return append(cmds, tea.Quit)
		}
		if !stepped {
			break
		}
	}

	for {
		out, ok := m.app.PopOut()
		if !ok {
			break
		}
		switch out.Kind {
		case msg.OutRefresh:
			// Entering, leaving or jumping to another directory only
			// requests a redraw; the new pwd still needs a listing.
			if pwd := m.app.Pwd(); pwd != m.explored {
				m.explored = pwd
				cmds = append(cmds, m.exploreCmd())
			}
			m.syncViewport()
		case msg.OutExplore:
			m.explored = m.app.Pwd()
			cmds = append(cmds, m.exploreCmd())
		case msg.OutClearScreen:
			cmds = append(cmds, tea.ClearScreen)
		case msg.OutPrintResultAndQuit:
			m.outcome = Outcome{Output: m.app.ResultString()}
			return append(cmds, tea.Quit)
		case msg.OutPrintAppStateAndQuit:
			m.outcome = Outcome{Output: m.dumpState()}
			return append(cmds, tea.Quit)
		case msg.OutDebug:
			m.writeDebug(out.Path)
		case msg.OutCall:
			c := exec.Command(out.Command.Command, out.Command.Args...)
			cmds = append(cmds, tea.ExecProcess(c, func(err error) tea.Msg {
				return callDoneMsg{err: err}
			}))
		}
	}

	m.writePipes()
	return cmds
}

// exploreCmd captures the state the producer needs so the exploration runs
// off the dispatch loop.
func (m *Model) exploreCmd() tea.Cmd {
	pwd := m.app.Pwd()
	filters := m.app.Filters()
	focus := 0
	if buf := m.app.DirectoryBuffer(); buf != nil {
		focus = buf.Focus
	}
	return func() tea.Msg {
		buffer, err := explorer.Explore(pwd, filters, focus)
		return exploredMsg{parent: pwd, buffer: buffer, err: err}
	}
}

func (m *Model) dumpState() string {
	data, err := yaml.Marshal(m.app.Snapshot())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func (m *Model) writeDebug(path string) {
	if err := os.WriteFile(path, []byte(m.dumpState()), 0o644); err != nil {
		log.Error("cannot write debug dump", err)
	}
}

// writePipes overwrites the outbound snapshot files after a settle point.
func (m *Model) writePipes() {
	p := m.app.Pipe()

	focused := ""
	if n := m.app.FocusedNode(); n != nil {
		focused = n.AbsolutePath
	}
	if err := p.WriteFocus(focused); err != nil {
		log.Debug("cannot write focus_out", err)
	}

	paths := make([]string, 0, len(m.app.Selection()))
	for _, n := range m.app.Selection() {
		paths = append(paths, n.AbsolutePath)
	}
	if err := p.WriteSelection(paths); err != nil {
		log.Debug("cannot write selection_out", err)
	}

	if err := p.WriteMode(m.app.Mode().Name); err != nil {
		log.Debug("cannot write mode_out", err)
	}
}

func (m *Model) resizeViewport() {
	// One line of title above, two lines of status below.
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
}

// syncViewport rebuilds the listing content and keeps the focused row in
// view.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}

	buf := m.app.DirectoryBuffer()
	if buf == nil || buf.Total == 0 {
		m.viewport.SetContent(StatusStyle.Render("  (empty)"))
		return
	}

	selected := make(map[node.Node]bool, len(m.app.Selection()))
	for _, n := range m.app.Selection() {
		selected[n] = true
	}

	lines := make([]string, 0, buf.Total)
	for i, n := range buf.Nodes {
		lines = append(lines, renderRow(n, i == buf.Focus, selected[n]))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if buf.Focus < m.viewport.YOffset {
		m.viewport.SetYOffset(buf.Focus)
	} else if buf.Focus >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(buf.Focus - m.viewport.Height + 1)
	}
}

func renderRow(n node.Node, focused, selected bool) string {
	cursor := "  "
	if focused {
		cursor = "▸ "
	}
	mark := " "
	if selected {
		mark = SelectedStyle.Render("*")
	}

	name := n.RelativePath
	switch {
	case n.IsDir:
		name = DirectoryStyle.Render(name + "/")
	case n.IsSymlink:
		name = SymlinkStyle.Render(name)
	}
	if focused {
		name = FocusedStyle.Render(n.RelativePath)
	}

	return cursor + mark + name
}

func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	title := TitleStyle.Render(m.app.Pwd())

	var status []string
	status = append(status, ModeStyle.Render(m.app.Mode().Name))
	if count := len(m.app.Selection()); count > 0 {
		status = append(status, StatusStyle.Render(fmt.Sprintf("%d selected", count)))
	}
	if count := len(m.app.Filters()); count > 0 {
		status = append(status, StatusStyle.Render(fmt.Sprintf("%d filters", count)))
	}
	if logs := m.app.Logs(); len(logs) > 0 {
		last := logs[len(logs)-1]
		style := StatusStyle
		switch last.Level {
		case app.LevelError:
			style = ErrorStyle
		case app.LevelSuccess:
			style = SuccessStyle
		}
		status = append(status, style.Render(last.Message))
	}

	inputLine := ""
	if buf, ok := m.app.InputBuffer(); ok {
		inputLine = InputStyle.Render("> " + buf)
	}

	return strings.Join([]string{
		title,
		m.viewport.View(),
		inputLine,
		strings.Join(status, " "),
	}, "\n")
}
