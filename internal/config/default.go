package config

import (
	"ferret/internal/filter"
	"ferret/internal/msg"
)

// Default returns the built-in configuration: vi-style navigation in the
// default mode, a "number" mode for jumping by index and a "filter" mode
// for narrowing the listing.
func Default() *Config {
	return &Config{
		Version: Version,
		Modes: map[string]Mode{
			"default": defaultMode(),
			"number":  numberMode(),
			"filter":  filterMode(),
		},
	}
}

func action(help string, messages ...msg.External) Action {
	return Action{Help: help, Messages: messages}
}

func defaultMode() Mode {
	toggleHidden := msg.External{
		Kind:   msg.ToggleNodeFilter,
		Filter: filter.HiddenFilter,
	}

	return Mode{
		Name: "default",
		KeyBindings: KeyBindings{
			OnKey: map[string]Action{
				"up":        action("focus previous", msg.External{Kind: msg.FocusPrevious}),
				"k":         action("focus previous", msg.External{Kind: msg.FocusPrevious}),
				"down":      action("focus next", msg.External{Kind: msg.FocusNext}),
				"j":         action("focus next", msg.External{Kind: msg.FocusNext}),
				"g":         action("focus first", msg.External{Kind: msg.FocusFirst}),
				"G":         action("focus last", msg.External{Kind: msg.FocusLast}),
				"right":     action("enter", msg.External{Kind: msg.Enter}),
				"l":         action("enter", msg.External{Kind: msg.Enter}),
				"enter":     action("enter", msg.External{Kind: msg.Enter}),
				"left":      action("back", msg.External{Kind: msg.Back}),
				"h":         action("back", msg.External{Kind: msg.Back}),
				"backspace": action("back", msg.External{Kind: msg.Back}),
				"space": action("toggle selection",
					msg.External{Kind: msg.ToggleSelection},
					msg.External{Kind: msg.FocusNext},
				),
				"u": action("clear selection", msg.External{Kind: msg.ClearSelection}),
				".": action("toggle hidden files", toggleHidden, msg.External{Kind: msg.Explore}),
				"r": action("re-explore", msg.External{Kind: msg.Explore}),
				":": action("go to index",
					msg.External{Kind: msg.SwitchMode, Input: "number"},
					msg.External{Kind: msg.SetInputBuffer, Input: ""},
				),
				"/": action("filter",
					msg.External{Kind: msg.SwitchMode, Input: "filter"},
					msg.External{Kind: msg.SetInputBuffer, Input: ""},
				),
				"F": action("reset filters",
					msg.External{Kind: msg.ResetNodeFilters},
					msg.External{Kind: msg.Explore},
				),
				"ctrl+l": action("clear screen",
					msg.External{Kind: msg.ClearScreen},
					msg.External{Kind: msg.Refresh},
				),
				"q":      action("quit with result", msg.External{Kind: msg.PrintResultAndQuit}),
				"ctrl+c": action("terminate", msg.External{Kind: msg.Terminate}),
			},
		},
	}
}

func numberMode() Mode {
	leave := []msg.External{
		{Kind: msg.ResetInputBuffer},
		{Kind: msg.SwitchMode, Input: "default"},
	}

	return Mode{
		Name: "number",
		KeyBindings: KeyBindings{
			OnKey: map[string]Action{
				"enter": action("focus index", append([]msg.External{
					{Kind: msg.FocusByIndexFromInput},
				}, leave...)...),
				"esc": action("cancel", leave...),
			},
			OnNumber: &Action{
				Help:     "input",
				Messages: []msg.External{{Kind: msg.BufferInputFromKey}},
			},
			Default: &Action{
				Messages: []msg.External{{Kind: msg.SwitchMode, Input: "default"}},
			},
		},
	}
}

func filterMode() Mode {
	return Mode{
		Name: "filter",
		KeyBindings: KeyBindings{
			OnKey: map[string]Action{
				"enter": action("apply filter",
					msg.External{
						Kind:   msg.AddNodeFilterFromInput,
						Filter: filter.Filter{Kind: filter.RelativePathDoesContain},
					},
					msg.External{Kind: msg.ResetInputBuffer},
					msg.External{Kind: msg.SwitchMode, Input: "default"},
					msg.External{Kind: msg.Explore},
				),
				"esc": action("cancel",
					msg.External{Kind: msg.ResetInputBuffer},
					msg.External{Kind: msg.SwitchMode, Input: "default"},
				),
			},
			Default: &Action{
				Messages: []msg.External{{Kind: msg.BufferInputFromKey}},
			},
		},
	}
}
