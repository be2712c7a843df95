package livetable

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Row is one entry of the outer display: plain text or a nested table.
type Row struct {
	Text  string
	Table *table.Table
}

func (r Row) String() string {
	if r.Table != nil {
		return r.Table.String()
	}
	return r.Text
}

// Display is the mutable table-of-tables painted by a Refresher. Rows are
// addressed by index and stacked vertically.
type Display struct {
	rows []Row
}

// NewDisplay returns an empty display.
func NewDisplay() *Display {
	return &Display{}
}

// AddText appends a text row.
func (d *Display) AddText(text string) {
	d.rows = append(d.rows, Row{Text: text})
}

// AddTable appends a nested table row.
func (d *Display) AddTable(t *table.Table) {
	d.rows = append(d.rows, Row{Table: t})
}

// RemoveRow deletes the row at index i.
func (d *Display) RemoveRow(i int) error {
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("row %d out of range [0, %d)", i, len(d.rows))
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

// Truncate removes rows from the end until at most n remain.
func (d *Display) Truncate(n int) {
	for i := len(d.rows) - 1; i >= n && i >= 0; i-- {
		_ = d.RemoveRow(i)
	}
}

// Len returns the number of rows.
func (d *Display) Len() int {
	return len(d.rows)
}

// Row returns the row at index i.
func (d *Display) Row(i int) Row {
	return d.rows[i]
}

// String renders all rows.
func (d *Display) String() string {
	if len(d.rows) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		parts = append(parts, r.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Refresher repaints a display after it has been mutated.
type Refresher interface {
	Refresh(d *Display) error
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(d *Display) error

// Refresh implements Refresher.
func (f RefresherFunc) Refresh(d *Display) error { return f(d) }

// WriterRefresher writes each frame to W followed by a newline. It is meant
// for non-interactive output; the bubbletea runtime repaints in place.
type WriterRefresher struct {
	W io.Writer
}

// Refresh implements Refresher.
func (w WriterRefresher) Refresh(d *Display) error {
	var b strings.Builder
	b.WriteString(d.String())
	b.WriteByte('\n')
	_, err := io.WriteString(w.W, b.String())
	return err
}
