package livetable

import (
	"fmt"
	"strings"

	"github.com/Digital-Shane/adr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

const (
	idPlaceholder = "{id}"
	exitHint      = "(Pressing any other key exits the app)"
	// headerRows is the number of display rows kept across repaints.
	headerRows = 1
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// render rebuilds the display from the current pagination state.
func (s *session[T]) render() *Display {
	d := s.display
	if d.Len() == 0 {
		d.AddText(s.wrap(s.cfg.header, theme.CategoryInfo))
	}
	d.Truncate(headerRows)

	s.pager.Settle()
	if !s.done {
		s.selected = s.pager.Index()
	}

	d.AddTable(s.dataTable())

	if footer := s.footer(); footer != "" {
		d.AddText(s.wrap(footer, theme.CategoryFooter))
	}

	if len(s.cfg.actions) > 0 {
		d.AddText(s.wrap("Commands:", theme.CategoryInfo) + "\n" + exitHint)
		d.AddTable(s.legendTable())
	}
	return d
}

// paint renders and pushes the display to out.
func (s *session[T]) paint(out Refresher) error {
	return out.Refresh(s.render())
}

func (s *session[T]) wrap(text string, c theme.Category) string {
	if text == "" {
		return text
	}
	return s.cfg.styler.Wrap(text, c)
}

func (s *session[T]) dataTable() *table.Table {
	t := table.New().
		Border(s.cfg.borders.Data).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	if len(s.cfg.columns) > 0 {
		headers := make([]string, len(s.cfg.columns))
		for i, c := range s.cfg.columns {
			headers[i] = s.wrap(c, theme.CategoryColumn)
		}
		t.Headers(headers...)
	}

	start, _ := s.pager.Bounds()
	cursor := s.pager.Cursor()
	for i, item := range VisibleSlice(s.cfg.source, s.pager.Page(), s.pager.PageSize()) {
		fields := s.pick(start+i, item)
		cells := make([]string, len(fields))
		for j, f := range fields {
			f = s.truncate(f)
			if i == cursor {
				// A nested reset would end the highlight early.
				f = s.wrap(ansi.Strip(f), theme.CategorySuccess)
			}
			cells[j] = f
		}
		t.Row(cells...)
	}
	return t
}

// truncate cuts text to the max cell width. Escape sequences take no width
// and are kept whole.
func (s *session[T]) truncate(text string) string {
	if s.cfg.maxCellWidth <= 0 || ansi.StringWidth(text) <= s.cfg.maxCellWidth {
		return text
	}
	return ansi.Truncate(text, s.cfg.maxCellWidth, "…")
}

// footer composes the page position and the enter instruction.
func (s *session[T]) footer() string {
	pageInfo := ""
	if s.pager.PageCount() > 0 {
		pageInfo = fmt.Sprintf("On page %d/%d", s.pager.Page(), s.pager.PageCount())
	}

	message := s.cfg.enterInstruction
	if s.cfg.idPicker != nil && message != "" {
		id := ""
		if item, ok := s.item(); ok {
			id = s.cfg.idPicker(item)
		}
		message = strings.ReplaceAll(message, idPlaceholder, id)
	}

	switch {
	case pageInfo != "" && message != "":
		return fmt.Sprintf("%s, press [ENTER] to %s", pageInfo, message)
	case message != "":
		return fmt.Sprintf("Press [ENTER] to %s", message)
	default:
		return pageInfo
	}
}

func (s *session[T]) legendTable() *table.Table {
	t := table.New().
		Border(s.cfg.borders.Legend).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	for _, a := range s.cfg.actions {
		t.Row(
			s.wrap(fmt.Sprintf("[%c]", a.Key), theme.CategoryKey),
			s.wrap(a.Description, theme.CategoryFooter),
		)
	}
	return t
}
