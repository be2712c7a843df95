package livetable

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// Model runs a table session inside a bubbletea program. The program is the
// live renderer: every key message updates the session and View paints the
// rebuilt display in place.
type Model[T any] struct {
	s    *session[T]
	keys KeyMap
	help help.Model
}

// NewModel returns the bubbletea model for the table. The first frame is
// rendered immediately. Callers that run the model themselves must call
// Invoke once the program has exited.
func (t *Table[T]) NewModel() (*Model[T], error) {
	if err := t.claim(); err != nil {
		return nil, err
	}
	m := &Model[T]{
		s:    newSession(&t.cfg),
		keys: DefaultKeyMap(),
		help: help.New(),
	}
	if !m.s.done {
		m.s.render()
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	if m.s.done {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.s.done {
			return m, tea.Quit
		}
		if m.s.handle(KeyFromMsg(msg)) {
			return m, tea.Quit
		}
		m.s.render()
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	if m.s.display.Len() == 0 {
		return ""
	}
	view := m.s.display.String()
	if m.s.cfg.keyHelp && !m.s.done {
		view += "\n" + m.help.View(m.keys)
	}
	return view
}

// Done reports whether the session has ended.
func (m *Model[T]) Done() bool { return m.s.done }

// Page returns the current page.
func (m *Model[T]) Page() int { return m.s.pager.Page() }

// Cursor returns the row cursor.
func (m *Model[T]) Cursor() int { return m.s.pager.Cursor() }

// Result describes how the session ended so far.
func (m *Model[T]) Result() Result[T] { return m.s.result() }

// Invoke runs the resolved callback once the session has ended. It reports
// whether a callback ran.
func (m *Model[T]) Invoke() bool { return m.s.invoke() }

// Start runs the table in the terminal and blocks until a terminating key
// is pressed. The resolved callback runs after the program has released the
// terminal. An empty data source returns immediately.
func (t *Table[T]) Start(ctx context.Context, opts ...tea.ProgramOption) (Result[T], error) {
	if len(t.cfg.source) == 0 {
		if err := t.claim(); err != nil {
			return Result[T]{}, err
		}
		return Result[T]{}, nil
	}

	m, err := t.NewModel()
	if err != nil {
		return Result[T]{}, err
	}

	// status icons are emoji
	runewidth.DefaultCondition.EastAsianWidth = false
	runewidth.DefaultCondition.StrictEmojiNeutral = true

	options := append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, options...)
	if _, err := p.Run(); err != nil {
		return Result[T]{}, fmt.Errorf("%w: %w", ErrInput, err)
	}

	m.Invoke()
	return m.Result(), nil
}
