// Package app implements the state-transition core of the explorer: one
// aggregate state evolved exclusively by draining a priority-ordered queue
// of messages, producing a FIFO queue of effects for the executor.
package app

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ferret/internal/config"
	"ferret/internal/filter"
	"ferret/internal/input"
	"ferret/internal/msg"
	"ferret/internal/node"
	"ferret/internal/pipe"
	"ferret/internal/sched"
)

// ErrTerminated is the deliberate shutdown signal produced by the Terminate
// command. It is the only way a step can fail; the driving loop must treat
// it as an intentional exit with a non-zero code, not a crash.
var ErrTerminated = errors.New("terminated")

// App is the aggregate state. It is owned by a single driving loop; the
// task queue is the only member safe to touch from other goroutines.
type App struct {
	config      *config.Config
	pwd         string
	buffers     map[string]*node.DirectoryBuffer
	tasks       *sched.Queue
	selection   []node.Node
	out         []msg.Out
	mode        config.Mode
	inputBuffer *string
	pid         int
	sessionPath string
	pipe        *pipe.Pipe
	filters     filter.Set
	logs        []Log
}

// New constructs the app with its session rooted in the runtime directory,
// keyed by process id.
func New(cfg *config.Config, pwd string) (*App, error) {
	pid := os.Getpid()
	session := filepath.Join(runtimeDir(), "ferret", "session", strconv.Itoa(pid))
	return NewAt(cfg, pwd, session)
}

// NewAt constructs the app with an explicit session path.
func NewAt(cfg *config.Config, pwd, sessionPath string) (*App, error) {
	p, err := pipe.New(sessionPath)
	if err != nil {
		return nil, err
	}

	mode, ok := cfg.Mode("default")
	if !ok {
		mode = config.Mode{Name: "default"}
	}

	return &App{
		config:      cfg,
		pwd:         pwd,
		buffers:     make(map[string]*node.DirectoryBuffer),
		tasks:       sched.NewQueue(),
		mode:        mode,
		pid:         os.Getpid(),
		sessionPath: sessionPath,
		pipe:        p,
		filters:     filter.Default(cfg.General.ShowHidden),
	}, nil
}

func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// Enqueue schedules a task. Safe to call from producer goroutines.
func (a *App) Enqueue(t sched.Task) {
	a.tasks.Push(t)
}

// Step pops and applies exactly one task. It reports whether a task was
// processed; the only possible error is ErrTerminated.
func (a *App) Step() (bool, error) {
	task, ok := a.tasks.Pop()
	if !ok {
		return false, nil
	}

	switch m := task.Msg.(type) {
	case msg.AddDirectory:
		a.addDirectory(m.Parent, m.Buffer)
	case msg.HandleKey:
		a.handleKey(m.Key)
	case msg.External:
		if err := a.handleExternal(m, task.Key); err != nil {
			return true, err
		}
	}
	return true, nil
}

// handleKey resolves a key through the active mode's binding tiers and
// expands the bound commands into priority-0 tasks tagged with the key.
func (a *App) handleKey(key input.Key) {
	kb := a.mode.KeyBindings

	var action *config.Action
	if bound, ok := kb.OnKey[key.String()]; ok {
		action = &bound
	} else if key.IsAlphabet() {
		action = kb.OnAlphabet
	} else if key.IsNumber() {
		action = kb.OnNumber
	} else if key.IsSpecialCharacter() {
		action = kb.OnSpecialCharacter
	}
	if action == nil {
		action = kb.Default
	}
	if action == nil {
		return
	}

	for _, m := range action.Messages {
		k := key
		a.Enqueue(sched.NewTask(0, m, &k))
	}
}

func (a *App) addDirectory(parent string, buffer node.DirectoryBuffer) {
	a.buffers[parent] = &buffer
	a.pushOut(msg.Out{Kind: msg.OutRefresh})
}

func (a *App) pushOut(out msg.Out) {
	a.out = append(a.out, out)
}

// PopOut drains one effect in FIFO order.
func (a *App) PopOut() (msg.Out, bool) {
	if len(a.out) == 0 {
		return msg.Out{}, false
	}
	out := a.out[0]
	a.out = a.out[1:]
	return out, true
}

// RefreshSelection drops selected nodes whose paths no longer exist. Not
// invoked automatically; the owning loop calls it at its own cadence.
func (a *App) RefreshSelection() {
	kept := a.selection[:0]
	for _, n := range a.selection {
		if _, err := os.Stat(n.AbsolutePath); err == nil {
			kept = append(kept, n)
		}
	}
	a.selection = kept
}

// Result is the selection when non-empty, else the focused node, else
// nothing.
func (a *App) Result() []node.Node {
	if len(a.selection) > 0 {
		return append([]node.Node(nil), a.selection...)
	}
	if n := a.FocusedNode(); n != nil {
		return []node.Node{*n}
	}
	return nil
}

// ResultString joins the absolute paths of Result with newlines. This is
// what PrintResultAndQuit emits.
func (a *App) ResultString() string {
	result := a.Result()
	paths := make([]string, len(result))
	for i, n := range result {
		paths[i] = n.AbsolutePath
	}
	return strings.Join(paths, "\n")
}

func (a *App) Pwd() string { return a.pwd }

// DirectoryBuffer returns the buffer for the working directory, if it has
// been explored.
func (a *App) DirectoryBuffer() *node.DirectoryBuffer {
	return a.buffers[a.pwd]
}

func (a *App) directoryBufferMut() *node.DirectoryBuffer {
	return a.buffers[a.pwd]
}

// FocusedNode returns the node under the cursor in the working directory.
func (a *App) FocusedNode() *node.Node {
	return a.DirectoryBuffer().FocusedNode()
}

func (a *App) Selection() []node.Node { return a.selection }

func (a *App) Mode() config.Mode { return a.mode }

// InputBuffer returns the buffer text and whether the buffer is set; an
// empty-string buffer is set and visible, a reset buffer is not.
func (a *App) InputBuffer() (string, bool) {
	if a.inputBuffer == nil {
		return "", false
	}
	return *a.inputBuffer, true
}

func (a *App) Config() *config.Config { return a.config }

func (a *App) Filters() filter.Set { return a.filters }

func (a *App) Logs() []Log { return a.logs }

func (a *App) Pid() int { return a.pid }

func (a *App) SessionPath() string { return a.sessionPath }

func (a *App) Pipe() *pipe.Pipe { return a.pipe }

// Snapshot is the YAML-serializable dump of the aggregate state, used by
// the Debug and PrintAppStateAndQuit effects.
type Snapshot struct {
	Version          string                          `yaml:"version"`
	Pwd              string                          `yaml:"pwd"`
	DirectoryBuffers map[string]node.DirectoryBuffer `yaml:"directory_buffers"`
	Selection        []node.Node                     `yaml:"selection"`
	Mode             string                          `yaml:"mode"`
	InputBuffer      *string                         `yaml:"input_buffer"`
	Pid              int                             `yaml:"pid"`
	SessionPath      string                          `yaml:"session_path"`
	Pipe             pipe.Pipe                       `yaml:"pipe"`
	Filters          filter.Set                      `yaml:"filters"`
	Logs             []Log                           `yaml:"logs"`
}

func (a *App) Snapshot() Snapshot {
	buffers := make(map[string]node.DirectoryBuffer, len(a.buffers))
	for path, buf := range a.buffers {
		buffers[path] = *buf
	}
	return Snapshot{
		Version:          config.Version,
		Pwd:              a.pwd,
		DirectoryBuffers: buffers,
		Selection:        a.selection,
		Mode:             a.mode.Name,
		InputBuffer:      a.inputBuffer,
		Pid:              a.pid,
		SessionPath:      a.sessionPath,
		Pipe:             *a.pipe,
		Filters:          a.filters,
		Logs:             a.logs,
	}
}
