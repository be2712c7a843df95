package livetable

import (
	"strconv"

	"github.com/patrickmn/go-cache"
)

// session is the state of one display: pagination, the display being
// painted and the resolved selection.
type session[T any] struct {
	cfg     *config[T]
	pager   *Pager
	display *Display
	fields  *cache.Cache

	done      bool
	cancelled bool
	selected  int
	trigger   *KeyAction[T]
	invoked   bool
}

func newSession[T any](cfg *config[T]) *session[T] {
	s := &session[T]{
		cfg:      cfg,
		pager:    NewPager(len(cfg.source), cfg.pageSize, cfg.paging),
		display:  NewDisplay(),
		selected: -1,
	}
	if cfg.fieldCacheTTL > 0 {
		s.fields = cache.New(cfg.fieldCacheTTL, 2*cfg.fieldCacheTTL)
	}
	if len(cfg.source) == 0 {
		s.done = true
	}
	return s
}

// handle applies one key press and reports whether the loop is over.
func (s *session[T]) handle(k Key) bool {
	if s.done {
		return true
	}

	if k.Code == KeyEnter {
		s.finish(nil)
		return true
	}
	if k.Code == KeyRune {
		if a, ok := s.cfg.action(k.Rune); ok {
			s.finish(&a)
			return true
		}
	}

	switch {
	case k.Code == KeyEnd, k.Code == KeyRight && k.Has(ModCtrl):
		s.pager.LastPage()
	case k.Code == KeyHome, k.Code == KeyLeft && k.Has(ModCtrl):
		s.pager.FirstPage()
	case k.Code == KeyRight, k.Code == KeyPgDown:
		s.pager.NextPage()
	case k.Code == KeyLeft, k.Code == KeyPgUp:
		s.pager.PrevPage()
	case k.Code == KeyDown:
		s.pager.CursorDown()
	case k.Code == KeyUp:
		s.pager.CursorUp()
	default:
		s.done = true
		s.cancelled = true
		s.selected = -1
		return true
	}

	s.selected = s.pager.Index()
	return false
}

// finish resolves the item under the cursor at the moment of the key press.
func (s *session[T]) finish(trigger *KeyAction[T]) {
	s.done = true
	s.selected = s.current()
	s.trigger = trigger
}

func (s *session[T]) current() int {
	s.pager.Settle()
	return s.pager.Index()
}

// item returns the selected item, if any.
func (s *session[T]) item() (T, bool) {
	if s.selected < 0 || s.selected >= len(s.cfg.source) {
		var zero T
		return zero, false
	}
	return s.cfg.source[s.selected], true
}

// pick returns the display fields of the item at data source index i.
func (s *session[T]) pick(i int, item T) []string {
	if s.fields == nil {
		return s.cfg.picker(item)
	}
	key := strconv.Itoa(i)
	if v, ok := s.fields.Get(key); ok {
		if fields, ok := v.([]string); ok {
			return fields
		}
	}
	fields := s.cfg.picker(item)
	s.fields.SetDefault(key, fields)
	return fields
}

// result describes how the loop ended.
func (s *session[T]) result() Result[T] {
	r := Result[T]{Cancelled: s.cancelled, Invoked: s.invoked}
	if item, ok := s.item(); ok && !s.cancelled {
		r.Item = item
		r.Selected = true
		if s.trigger != nil {
			r.Trigger = s.trigger.Key
		}
	}
	return r
}

// invoke runs the resolved callback. It fires at most once per session and
// never after a cancel.
func (s *session[T]) invoke() bool {
	if !s.done || s.cancelled || s.invoked {
		return false
	}
	item, ok := s.item()
	if !ok {
		return false
	}

	cb := s.cfg.selection
	if s.trigger != nil {
		cb = s.trigger.Action
	}
	if cb == nil {
		return false
	}
	s.invoked = true
	cb(item)
	return true
}
