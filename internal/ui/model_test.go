package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferret/internal/app"
	"ferret/internal/config"
	"ferret/internal/msg"
	"ferret/internal/sched"
)

func newTestModel(t *testing.T, pwd string) *Model {
	t.Helper()

	a, err := app.NewAt(config.Default(), pwd, filepath.Join(t.TempDir(), "session"))
	require.NoError(t, err)

	m := New(a)
	t.Cleanup(func() {
		if m.watcher != nil {
			m.watcher.Close()
		}
	})

	// Resolve the startup exploration synchronously.
	feedAll(t, m, m.settle())
	return m
}

// feed executes one command and routes the produced messages back into
// Update, the way the runtime would.
func feed(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch got := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range got {
			feed(t, m, sub)
		}
	case exploredMsg, pipeMsg, callDoneMsg:
		_, next := m.Update(got)
		feed(t, m, next)
	}
}

func feedAll(t *testing.T, m *Model, cmds []tea.Cmd) {
	t.Helper()
	for _, cmd := range cmds {
		feed(t, m, cmd)
	}
}

func TestEnterExploresTheNewDirectory(t *testing.T) {
	parent := t.TempDir()
	sub := filepath.Join(parent, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "inner.txt"), nil, 0o644))

	m := newTestModel(t, parent)
	require.NotNil(t, m.app.FocusedNode())
	require.Equal(t, "sub", m.app.FocusedNode().RelativePath)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	feed(t, m, cmd)

	assert.Equal(t, sub, m.app.Pwd())
	buf := m.app.DirectoryBuffer()
	require.NotNil(t, buf, "entering a directory must schedule its exploration")
	require.Equal(t, 1, buf.Total)
	assert.Equal(t, "inner.txt", buf.Nodes[0].RelativePath)
}

func TestBackExploresTheParent(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "sub"), 0o755))

	m := newTestModel(t, parent)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	feed(t, m, cmd)
	require.Equal(t, filepath.Join(parent, "sub"), m.app.Pwd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	feed(t, m, cmd)

	assert.Equal(t, parent, m.app.Pwd())
	buf := m.app.DirectoryBuffer()
	require.NotNil(t, buf)
	assert.Equal(t, 1, buf.Total)
	assert.Equal(t, "sub", buf.Nodes[0].RelativePath)
}

// Every effect variant must have a producing command and an executor branch
// with observable behavior.
func TestEveryEffectKindIsExecuted(t *testing.T) {
	producers := map[msg.OutKind]msg.External{
		msg.OutExplore:              {Kind: msg.Explore},
		msg.OutRefresh:              {Kind: msg.Refresh},
		msg.OutClearScreen:          {Kind: msg.ClearScreen},
		msg.OutPrintResultAndQuit:   {Kind: msg.PrintResultAndQuit},
		msg.OutPrintAppStateAndQuit: {Kind: msg.PrintAppStateAndQuit},
		msg.OutDebug:                {Kind: msg.Debug},
		msg.OutCall:                 {Kind: msg.Call, Command: msg.Command{Command: "true"}},
	}

	for _, kind := range msg.OutKinds {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			producer, ok := producers[kind]
			require.True(t, ok, "no command produces effect %s", kind)

			dump := filepath.Join(t.TempDir(), "dump.yml")
			if kind == msg.OutDebug {
				producer.Input = dump
			}

			m := newTestModel(t, t.TempDir())
			m.app.Enqueue(sched.NewTask(0, producer, nil))
			cmds := m.settle()

			switch kind {
			case msg.OutExplore, msg.OutClearScreen, msg.OutCall:
				assert.NotEmpty(t, cmds)
			case msg.OutRefresh:
				assert.Empty(t, cmds)
			case msg.OutPrintResultAndQuit, msg.OutPrintAppStateAndQuit:
				require.NotEmpty(t, cmds)
				quit := false
				for _, cmd := range cmds {
					if _, ok := cmd().(tea.QuitMsg); ok {
						quit = true
					}
				}
				assert.True(t, quit, "quitting effects must stop the program")
				if kind == msg.OutPrintAppStateAndQuit {
					assert.Contains(t, m.outcome.Output, "version:")
				}
			case msg.OutDebug:
				data, err := os.ReadFile(dump)
				require.NoError(t, err)
				assert.Contains(t, string(data), "version:")
			}
		})
	}
}
