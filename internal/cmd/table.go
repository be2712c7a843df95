package cmd

import (
	"context"
	"io"

	"github.com/Digital-Shane/adr/internal/config"
	"github.com/Digital-Shane/adr/internal/tui/livetable"

	tea "github.com/charmbracelet/bubbletea"
)

// keySource and frameSink replace the terminal when set. Tests use them to
// script a session.
var (
	keySource livetable.KeyReader
	frameSink livetable.Refresher
)

// newTable returns a builder carrying the table settings from cfg.
func newTable[T any](cfg *config.Config) *livetable.Builder[T] {
	return livetable.New[T]().
		WithPageSize(cfg.PageSize).
		WithPaging(cfg.PagingMode()).
		WithMaxCellWidth(cfg.MaxCellWidth).
		WithFieldCache(cfg.FieldCacheTTL()).
		WithKeyHelp(true)
}

// runTable drives the table in the terminal, painting on ui so stdout stays
// free for the selected output.
func runTable[T any](ctx context.Context, b *livetable.Builder[T], ui io.Writer) (livetable.Result[T], error) {
	if keySource == nil {
		return b.Start(ctx, tea.WithOutput(ui))
	}

	t, err := b.Build()
	if err != nil {
		return livetable.Result[T]{}, err
	}
	out := frameSink
	if out == nil {
		out = livetable.WriterRefresher{W: io.Discard}
	}
	return t.Run(ctx, keySource, out)
}
