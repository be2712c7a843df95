package livetable

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyCode names the key that was pressed. Printable characters arrive as
// KeyRune with the character in Key.Rune.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPgUp
	KeyPgDown
	KeyHome
	KeyEnd
	KeyEsc
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Key is a single key press as seen by the dispatch loop.
type Key struct {
	Code KeyCode
	Rune rune
	Mod  Modifier
}

// Has reports whether the modifier m was held.
func (k Key) Has(m Modifier) bool { return k.Mod&m != 0 }

// RuneKey builds the key press for a printable character.
func RuneKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// KeyReader blocks until the next key press is available.
type KeyReader interface {
	ReadKey(ctx context.Context) (Key, error)
}

// KeyFromMsg converts a bubbletea key message to a Key.
func KeyFromMsg(msg tea.KeyMsg) Key {
	k := Key{}
	if msg.Alt {
		k.Mod |= ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			k.Code = KeyRune
			k.Rune = msg.Runes[0]
		}
	case tea.KeySpace:
		k.Code = KeyRune
		k.Rune = ' '
	case tea.KeyEnter:
		k.Code = KeyEnter
	case tea.KeyUp:
		k.Code = KeyUp
	case tea.KeyDown:
		k.Code = KeyDown
	case tea.KeyLeft:
		k.Code = KeyLeft
	case tea.KeyRight:
		k.Code = KeyRight
	case tea.KeyShiftUp:
		k.Code, k.Mod = KeyUp, k.Mod|ModShift
	case tea.KeyShiftDown:
		k.Code, k.Mod = KeyDown, k.Mod|ModShift
	case tea.KeyCtrlLeft:
		k.Code, k.Mod = KeyLeft, k.Mod|ModCtrl
	case tea.KeyCtrlRight:
		k.Code, k.Mod = KeyRight, k.Mod|ModCtrl
	case tea.KeyPgUp:
		k.Code = KeyPgUp
	case tea.KeyPgDown:
		k.Code = KeyPgDown
	case tea.KeyHome:
		k.Code = KeyHome
	case tea.KeyEnd:
		k.Code = KeyEnd
	case tea.KeyEsc:
		k.Code = KeyEsc
	}
	return k
}

// KeyMap lists the navigation bindings. It only feeds the help line; dispatch
// works on Key values so the blocking runtime and the bubbletea runtime agree.
type KeyMap struct {
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Down      key.Binding
	Up        key.Binding
	Select    key.Binding
}

// DefaultKeyMap returns the built-in navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage:  key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page")),
		FirstPage: key.NewBinding(key.WithKeys("home", "ctrl+left"), key.WithHelp("home", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("end", "ctrl+right"), key.WithHelp("end", "last page")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
	}
}

// ChanKeyReader reads key messages from a channel. A closed channel reports
// io.EOF and a cancelled context aborts the wait.
type ChanKeyReader struct {
	C <-chan tea.KeyMsg
}

// ReadKey implements KeyReader.
func (r ChanKeyReader) ReadKey(ctx context.Context) (Key, error) {
	if r.C == nil {
		return Key{}, errors.New("no key channel")
	}
	select {
	case <-ctx.Done():
		return Key{}, ctx.Err()
	case msg, ok := <-r.C:
		if !ok {
			return Key{}, io.EOF
		}
		return KeyFromMsg(msg), nil
	}
}
