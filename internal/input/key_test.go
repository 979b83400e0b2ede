package input_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"ferret/internal/input"
)

func TestFromTeaRune(t *testing.T) {
	k := input.FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, "a", k.String())
	c, ok := k.Char()
	assert.True(t, ok)
	assert.Equal(t, 'a', c)
}

func TestFromTeaSpecialKeys(t *testing.T) {
	k := input.FromTea(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "enter", k.String())
	_, ok := k.Char()
	assert.False(t, ok)

	k = input.FromTea(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, "ctrl+c", k.String())

	k = input.FromTea(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "space", k.String())
	c, ok := k.Char()
	assert.True(t, ok)
	assert.Equal(t, ' ', c)
}

func TestClassification(t *testing.T) {
	tests := []struct {
		key      input.Key
		alphabet bool
		number   bool
		special  bool
	}{
		{input.Key{Name: "a", Rune: 'a'}, true, false, false},
		{input.Key{Name: "Z", Rune: 'Z'}, true, false, false},
		{input.Key{Name: "7", Rune: '7'}, false, true, false},
		{input.Key{Name: "?", Rune: '?'}, false, false, true},
		{input.Key{Name: ".", Rune: '.'}, false, false, true},
		{input.Key{Name: "enter"}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.Name, func(t *testing.T) {
			assert.Equal(t, tt.alphabet, tt.key.IsAlphabet())
			assert.Equal(t, tt.number, tt.key.IsNumber())
			assert.Equal(t, tt.special, tt.key.IsSpecialCharacter())
		})
	}
}
