// Package msg defines the closed message unions flowing through the engine:
// inbound messages (internal bookkeeping and external commands) and outbound
// effects for the executor. External messages carry a YAML form which is
// shared by the key-binding configuration and the msg_in pipe: either a bare
// string ("FocusNext") or a single-key mapping ("SwitchMode: default").
package msg

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"ferret/internal/filter"
	"ferret/internal/input"
	"ferret/internal/node"
)

// In is a message consumed by the engine's dispatch loop.
type In interface {
	in()
}

// AddDirectory registers a freshly explored listing for a directory.
type AddDirectory struct {
	Parent string
	Buffer node.DirectoryBuffer
}

// HandleKey asks the engine to resolve a key through the active mode.
type HandleKey struct {
	Key input.Key
}

func (AddDirectory) in() {}
func (HandleKey) in()    {}
func (External) in()     {}

// Command is a process-call intent. The executor is responsible for
// escaping the arguments and spawning the process.
type Command struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Kind names an external command.
type Kind string

const (
	Explore                               Kind = "Explore"
	Refresh                               Kind = "Refresh"
	ClearScreen                           Kind = "ClearScreen"
	FocusNext                             Kind = "FocusNext"
	FocusNextByRelativeIndex              Kind = "FocusNextByRelativeIndex"
	FocusNextByRelativeIndexFromInput     Kind = "FocusNextByRelativeIndexFromInput"
	FocusPrevious                         Kind = "FocusPrevious"
	FocusPreviousByRelativeIndex          Kind = "FocusPreviousByRelativeIndex"
	FocusPreviousByRelativeIndexFromInput Kind = "FocusPreviousByRelativeIndexFromInput"
	FocusFirst                            Kind = "FocusFirst"
	FocusLast                             Kind = "FocusLast"
	FocusPath                             Kind = "FocusPath"
	FocusPathFromInput                    Kind = "FocusPathFromInput"
	FocusByIndex                          Kind = "FocusByIndex"
	FocusByIndexFromInput                 Kind = "FocusByIndexFromInput"
	FocusByFileName                       Kind = "FocusByFileName"
	ChangeDirectory                       Kind = "ChangeDirectory"
	Enter                                 Kind = "Enter"
	Back                                  Kind = "Back"
	BufferInput                           Kind = "BufferInput"
	BufferInputFromKey                    Kind = "BufferInputFromKey"
	SetInputBuffer                        Kind = "SetInputBuffer"
	ResetInputBuffer                      Kind = "ResetInputBuffer"
	SwitchMode                            Kind = "SwitchMode"
	Call                                  Kind = "Call"
	Select                                Kind = "Select"
	UnSelect                              Kind = "UnSelect"
	ToggleSelection                       Kind = "ToggleSelection"
	ClearSelection                        Kind = "ClearSelection"
	AddNodeFilter                         Kind = "AddNodeFilter"
	RemoveNodeFilter                      Kind = "RemoveNodeFilter"
	ToggleNodeFilter                      Kind = "ToggleNodeFilter"
	AddNodeFilterFromInput                Kind = "AddNodeFilterFromInput"
	ResetNodeFilters                      Kind = "ResetNodeFilters"
	LogInfo                               Kind = "LogInfo"
	LogSuccess                            Kind = "LogSuccess"
	LogError                              Kind = "LogError"
	PrintResultAndQuit                    Kind = "PrintResultAndQuit"
	PrintAppStateAndQuit                  Kind = "PrintAppStateAndQuit"
	Debug                                 Kind = "Debug"
	Terminate                             Kind = "Terminate"
)

// Kinds lists every external command kind, in a stable order.
var Kinds = []Kind{
	Explore,
	Refresh,
	ClearScreen,
	FocusNext,
	FocusNextByRelativeIndex,
	FocusNextByRelativeIndexFromInput,
	FocusPrevious,
	FocusPreviousByRelativeIndex,
	FocusPreviousByRelativeIndexFromInput,
	FocusFirst,
	FocusLast,
	FocusPath,
	FocusPathFromInput,
	FocusByIndex,
	FocusByIndexFromInput,
	FocusByFileName,
	ChangeDirectory,
	Enter,
	Back,
	BufferInput,
	BufferInputFromKey,
	SetInputBuffer,
	ResetInputBuffer,
	SwitchMode,
	Call,
	Select,
	UnSelect,
	ToggleSelection,
	ClearSelection,
	AddNodeFilter,
	RemoveNodeFilter,
	ToggleNodeFilter,
	AddNodeFilterFromInput,
	ResetNodeFilters,
	LogInfo,
	LogSuccess,
	LogError,
	PrintResultAndQuit,
	PrintAppStateAndQuit,
	Debug,
	Terminate,
}

// External is one externally issued command. Only the payload field
// matching the kind is meaningful; the rest stay at their zero values.
type External struct {
	Kind    Kind
	Input   string
	Index   int
	Filter  filter.Filter
	Command Command
}

// payloadClass describes which argument shape a kind takes in YAML.
type payloadClass int

const (
	payloadNone payloadClass = iota
	payloadString
	payloadIndex
	payloadFilter
	payloadCommand
)

func classOf(kind Kind) (payloadClass, bool) {
	switch kind {
	case FocusPath, FocusByFileName, ChangeDirectory, BufferInput,
		SetInputBuffer, SwitchMode, LogInfo, LogSuccess, LogError, Debug:
		return payloadString, true
	case FocusNextByRelativeIndex, FocusPreviousByRelativeIndex, FocusByIndex:
		return payloadIndex, true
	case AddNodeFilter, RemoveNodeFilter, ToggleNodeFilter, AddNodeFilterFromInput:
		return payloadFilter, true
	case Call:
		return payloadCommand, true
	case Explore, Refresh, ClearScreen, FocusNext, FocusPrevious, FocusFirst,
		FocusLast, FocusPathFromInput, FocusByIndexFromInput,
		FocusNextByRelativeIndexFromInput, FocusPreviousByRelativeIndexFromInput,
		Enter, Back, BufferInputFromKey, ResetInputBuffer, Select, UnSelect,
		ToggleSelection, ClearSelection, ResetNodeFilters,
		PrintResultAndQuit, PrintAppStateAndQuit, Terminate:
		return payloadNone, true
	}
	return payloadNone, false
}

// UnmarshalYAML accepts either a bare command name or a single-key mapping
// from command name to its argument.
func (m *External) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return m.decode(Kind(value.Value), nil)
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("message mapping must have exactly one key")
		}
		return m.decode(Kind(value.Content[0].Value), value.Content[1])
	}
	return fmt.Errorf("message must be a string or a single-key mapping")
}

func (m *External) decode(kind Kind, payload *yaml.Node) error {
	class, ok := classOf(kind)
	if !ok {
		return fmt.Errorf("unknown message %q", kind)
	}
	if payload == nil && class != payloadNone {
		return fmt.Errorf("message %q requires an argument", kind)
	}

	*m = External{Kind: kind}
	switch class {
	case payloadNone:
		if payload != nil {
			return fmt.Errorf("message %q takes no argument", kind)
		}
		return nil
	case payloadString:
		return payload.Decode(&m.Input)
	case payloadIndex:
		return payload.Decode(&m.Index)
	case payloadFilter:
		return payload.Decode(&m.Filter)
	default:
		return payload.Decode(&m.Command)
	}
}

func (m External) MarshalYAML() (interface{}, error) {
	class, ok := classOf(m.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown message %q", m.Kind)
	}
	switch class {
	case payloadString:
		return map[string]string{string(m.Kind): m.Input}, nil
	case payloadIndex:
		return map[string]int{string(m.Kind): m.Index}, nil
	case payloadFilter:
		return map[string]filter.Filter{string(m.Kind): m.Filter}, nil
	case payloadCommand:
		return map[string]Command{string(m.Kind): m.Command}, nil
	default:
		return string(m.Kind), nil
	}
}
