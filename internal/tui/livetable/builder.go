package livetable

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Digital-Shane/adr/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrInvalidConfig is returned when a table is built without its required
	// settings.
	ErrInvalidConfig = errors.New("invalid live table configuration")
	// ErrInput wraps failures of the key source.
	ErrInput = errors.New("key input failed")
)

// Styler wraps text in the presentation of a semantic category.
type Styler interface {
	Wrap(text string, c theme.Category) string
}

// config is the validated, read-only setup of a Table.
type config[T any] struct {
	header           string
	enterInstruction string
	idPicker         func(T) string
	columns          []string
	picker           func(T) []string
	source           []T
	selection        func(T)
	actions          []KeyAction[T]
	pageSize         int
	paging           PagingMode
	maxCellWidth     int
	fieldCacheTTL    time.Duration
	styler           Styler
	borders          theme.Borders
	keyHelp          bool
}

func (c *config[T]) action(r rune) (KeyAction[T], bool) {
	for _, a := range c.actions {
		if a.Key == r {
			return a, true
		}
	}
	return KeyAction[T]{}, false
}

// Builder accumulates the setup of a live table. Setters are chainable and
// nothing is validated until Build or Start.
type Builder[T any] struct {
	cfg       config[T]
	sourceSet bool
}

// New returns a builder with the default page size, strict paging and the
// default theme.
func New[T any]() *Builder[T] {
	th := theme.Default()
	return &Builder[T]{cfg: config[T]{
		pageSize: DefaultPageSize,
		paging:   PagingStrict,
		styler:   th,
		borders:  th.Borders(),
	}}
}

// WithHeader sets the text shown above the table.
func (b *Builder[T]) WithHeader(text string) *Builder[T] {
	b.cfg.header = text
	return b
}

// WithEnterInstruction describes what Enter does. The message completes the
// sentence "press [ENTER] to ...", so it should start in lowercase. When
// idPicker is set, "{id}" in the message is replaced with the id of the
// selected item.
func (b *Builder[T]) WithEnterInstruction(message string, idPicker func(T) string) *Builder[T] {
	b.cfg.enterInstruction = message
	b.cfg.idPicker = idPicker
	return b
}

// WithColumns sets the column labels of the data table.
func (b *Builder[T]) WithColumns(labels ...string) *Builder[T] {
	b.cfg.columns = slices.Clone(labels)
	return b
}

// WithDataPicker sets the function extracting the display fields of an item.
func (b *Builder[T]) WithDataPicker(picker func(T) []string) *Builder[T] {
	b.cfg.picker = picker
	return b
}

// WithDataSource sets the items to page through. The slice is copied.
func (b *Builder[T]) WithDataSource(items []T) *Builder[T] {
	b.cfg.source = slices.Clone(items)
	b.sourceSet = true
	return b
}

// WithSelectionAction sets the callback invoked when Enter is pressed.
func (b *Builder[T]) WithSelectionAction(action func(T)) *Builder[T] {
	b.cfg.selection = action
	return b
}

// WithMultipleActions binds additional trigger keys. Each call replaces the
// previous bindings.
func (b *Builder[T]) WithMultipleActions(actions ...KeyAction[T]) *Builder[T] {
	b.cfg.actions = slices.Clone(actions)
	return b
}

// WithPageSize sets the number of rows per page.
func (b *Builder[T]) WithPageSize(n int) *Builder[T] {
	b.cfg.pageSize = n
	return b
}

// WithPaging selects the paging arithmetic.
func (b *Builder[T]) WithPaging(mode PagingMode) *Builder[T] {
	b.cfg.paging = mode
	return b
}

// WithMaxCellWidth truncates cells wider than w terminal columns. Zero
// disables truncation.
func (b *Builder[T]) WithMaxCellWidth(w int) *Builder[T] {
	b.cfg.maxCellWidth = w
	return b
}

// WithFieldCache memoizes data picker results per item for ttl. Zero
// disables the cache.
func (b *Builder[T]) WithFieldCache(ttl time.Duration) *Builder[T] {
	b.cfg.fieldCacheTTL = ttl
	return b
}

// WithStyler replaces the theme used to color the table. When s also
// provides Borders, those are used for the nested tables.
func (b *Builder[T]) WithStyler(s Styler) *Builder[T] {
	b.cfg.styler = s
	if bs, ok := s.(interface{ Borders() theme.Borders }); ok {
		b.cfg.borders = bs.Borders()
	}
	return b
}

// WithKeyHelp shows the navigation key help under the table in the
// terminal runtime.
func (b *Builder[T]) WithKeyHelp(show bool) *Builder[T] {
	b.cfg.keyHelp = show
	return b
}

// Build validates the setup and returns a single-use table.
func (b *Builder[T]) Build() (*Table[T], error) {
	cfg := b.cfg
	switch {
	case !b.sourceSet:
		return nil, fmt.Errorf("%w: data source is required", ErrInvalidConfig)
	case cfg.picker == nil:
		return nil, fmt.Errorf("%w: data picker is required", ErrInvalidConfig)
	case cfg.selection == nil && len(cfg.actions) == 0:
		return nil, fmt.Errorf("%w: a selection action or key action is required", ErrInvalidConfig)
	case cfg.pageSize <= 0:
		return nil, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidConfig, cfg.pageSize)
	case cfg.maxCellWidth < 0:
		return nil, fmt.Errorf("%w: max cell width must not be negative, got %d", ErrInvalidConfig, cfg.maxCellWidth)
	}

	seen := make(map[rune]bool, len(cfg.actions))
	for _, a := range cfg.actions {
		if a.Action == nil {
			return nil, fmt.Errorf("%w: key action %q has no callback", ErrInvalidConfig, a.Key)
		}
		if seen[a.Key] {
			return nil, fmt.Errorf("%w: key %q is bound more than once", ErrInvalidConfig, a.Key)
		}
		seen[a.Key] = true
	}

	if cfg.styler == nil {
		cfg.styler = theme.Default()
	}

	cfg.columns = slices.Clone(cfg.columns)
	cfg.source = slices.Clone(cfg.source)
	cfg.actions = slices.Clone(cfg.actions)
	return &Table[T]{cfg: cfg}, nil
}

// Start builds the table and runs it in the terminal. See Table.Start.
func (b *Builder[T]) Start(ctx context.Context, opts ...tea.ProgramOption) (Result[T], error) {
	t, err := b.Build()
	if err != nil {
		return Result[T]{}, err
	}
	return t.Start(ctx, opts...)
}
