package livetable

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/Digital-Shane/adr/internal/tui/theme"
)

// row is the item type used throughout the package tests.
type row struct {
	ID   int
	Name string
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: i, Name: fmt.Sprintf("item-%02d", i)}
	}
	return out
}

func pickRow(r row) []string {
	return []string{fmt.Sprint(r.ID), r.Name}
}

// tagStyler marks wrapped text with the category name so tests can assert
// which category was applied without decoding ANSI sequences.
type tagStyler struct{}

func (tagStyler) Wrap(text string, c theme.Category) string {
	return fmt.Sprintf("<%s>%s</%s>", c, text, c)
}

// scriptKeys replays a fixed key sequence and then reports io.EOF.
type scriptKeys struct {
	keys []Key
	read int
}

func keys(k ...Key) *scriptKeys {
	return &scriptKeys{keys: k}
}

func (s *scriptKeys) ReadKey(ctx context.Context) (Key, error) {
	if err := ctx.Err(); err != nil {
		return Key{}, err
	}
	if s.read >= len(s.keys) {
		return Key{}, io.EOF
	}
	k := s.keys[s.read]
	s.read++
	return k, nil
}

func repeat(k Key, n int) []Key {
	out := make([]Key, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// frames records every refresh.
type frames struct {
	count int
	last  string
}

func (f *frames) Refresh(d *Display) error {
	f.count++
	f.last = d.String()
	return nil
}

// calls records callback invocations by name.
type calls struct {
	names []string
	items []row
}

func (c *calls) record(name string) func(row) {
	return func(r row) {
		c.names = append(c.names, name)
		c.items = append(c.items, r)
	}
}

func newTestBuilder(t *testing.T, n int, c *calls) *Builder[row] {
	t.Helper()
	return New[row]().
		WithHeader("Records").
		WithColumns("ID", "Name").
		WithDataPicker(pickRow).
		WithDataSource(rows(n)).
		WithSelectionAction(c.record("select")).
		WithStyler(tagStyler{})
}

func mustBuild(t *testing.T, b *Builder[row]) *Table[row] {
	t.Helper()
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	return tbl
}

var (
	keyEnter  = Key{Code: KeyEnter}
	keyDown   = Key{Code: KeyDown}
	keyUp     = Key{Code: KeyUp}
	keyLeft   = Key{Code: KeyLeft}
	keyRight  = Key{Code: KeyRight}
	keyPgUp   = Key{Code: KeyPgUp}
	keyPgDown = Key{Code: KeyPgDown}
	keyHome   = Key{Code: KeyHome}
	keyEnd    = Key{Code: KeyEnd}
	keyEsc    = Key{Code: KeyEsc}
)
