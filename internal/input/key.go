package input

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Key is a single keyboard event in its canonical string form, e.g. "a",
// "G", "7", "?", "enter", "ctrl+c". Printable keys also carry their rune so
// they can be appended to the input buffer.
type Key struct {
	Name string
	Rune rune
}

// FromTea converts a bubbletea key message.
func FromTea(msg tea.KeyMsg) Key {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r == ' ' {
			return Key{Name: "space", Rune: ' '}
		}
		return Key{Name: string(r), Rune: r}
	}
	if msg.Type == tea.KeySpace {
		return Key{Name: "space", Rune: ' '}
	}
	return Key{Name: msg.String()}
}

func (k Key) String() string {
	return k.Name
}

// Char returns the printable character for the key, if it has one.
func (k Key) Char() (rune, bool) {
	if k.Rune == 0 {
		return 0, false
	}
	return k.Rune, true
}

func (k Key) IsAlphabet() bool {
	return k.Rune != 0 && unicode.IsLetter(k.Rune)
}

func (k Key) IsNumber() bool {
	return k.Rune != 0 && unicode.IsDigit(k.Rune)
}

// IsSpecialCharacter reports whether the key is a printable character that
// is neither a letter nor a digit, e.g. "?", "/", ".".
func (k Key) IsSpecialCharacter() bool {
	return k.Rune != 0 && !unicode.IsLetter(k.Rune) && !unicode.IsDigit(k.Rune) && unicode.IsPrint(k.Rune)
}
