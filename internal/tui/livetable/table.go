package livetable

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Result describes how a table session ended.
type Result[T any] struct {
	// Item is the selection, valid when Selected is true.
	Item     T
	Selected bool
	// Trigger is the bound key that ended the session, or 0 for Enter.
	Trigger rune
	// Cancelled is set when an unbound key ended the session.
	Cancelled bool
	// Invoked reports whether a callback ran.
	Invoked bool
}

// Table is a validated, single-use live table. Build one with New.
type Table[T any] struct {
	cfg     config[T]
	started atomic.Bool
}

// Len returns the number of items in the data source.
func (t *Table[T]) Len() int { return len(t.cfg.source) }

// claim marks the table as used. A table drives exactly one session.
func (t *Table[T]) claim() error {
	if !t.started.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: table has already been started", ErrInvalidConfig)
	}
	return nil
}

// Run drives the table with a blocking key source, pushing every frame to
// out. It returns after the session ends and the resolved callback, if any,
// has been invoked. An empty data source returns immediately without
// rendering.
func (t *Table[T]) Run(ctx context.Context, keys KeyReader, out Refresher) (Result[T], error) {
	if err := t.claim(); err != nil {
		return Result[T]{}, err
	}
	if len(t.cfg.source) == 0 {
		return Result[T]{}, nil
	}

	s := newSession(&t.cfg)
	if err := s.paint(out); err != nil {
		return Result[T]{}, fmt.Errorf("failed to refresh display: %w", err)
	}

	for {
		k, err := keys.ReadKey(ctx)
		if err != nil {
			return Result[T]{}, fmt.Errorf("%w: %w", ErrInput, err)
		}
		if s.handle(k) {
			break
		}
		if err := s.paint(out); err != nil {
			return Result[T]{}, fmt.Errorf("failed to refresh display: %w", err)
		}
	}

	s.invoke()
	return s.result(), nil
}
