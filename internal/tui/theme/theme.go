package theme

import (
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// IconSet represents a collection of icons keyed by semantic usage.
type IconSet map[string]string

// clone returns a copy of the icon set to avoid shared mutation across themes.
func (s IconSet) clone() IconSet {
	if s == nil {
		return nil
	}
	clone := make(IconSet, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Category is the semantic meaning of a piece of text. Widgets ask the theme
// to wrap text by category instead of hardcoding colors.
type Category int

const (
	CategoryInfo Category = iota
	CategorySuccess
	CategoryWarning
	CategoryError
	CategoryNumeric
	CategoryChoice
	CategoryInputLabel
	// Widget chrome.
	CategoryColumn
	CategoryFooter
	CategoryKey
)

var categoryNames = map[Category]string{
	CategoryInfo:       "info",
	CategorySuccess:    "success",
	CategoryWarning:    "warning",
	CategoryError:      "error",
	CategoryNumeric:    "numeric",
	CategoryChoice:     "choice",
	CategoryInputLabel: "input-label",
	CategoryColumn:     "column",
	CategoryFooter:     "footer",
	CategoryKey:        "key",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Colors holds the shared color palette used across the TUI.
type Colors struct {
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Numeric    lipgloss.Color
	Choice     lipgloss.Color
	InputLabel lipgloss.Color
	Column     lipgloss.Color
	Footer     lipgloss.Color
	Key        lipgloss.Color
	Muted      lipgloss.Color
}

// Borders defines reusable border styles.
type Borders struct {
	Data   lipgloss.Border
	Legend lipgloss.Border
}

// Theme centralizes palette, border and icon configuration.
type Theme struct {
	colors   Colors
	borders  Borders
	icons    IconSet
	fallback IconSet
}

// Option configures a Theme during construction.
type Option func(*Theme)

// WithIconSet overrides the icon set used by the theme.
func WithIconSet(set IconSet) Option {
	return func(t *Theme) {
		t.icons = set.clone()
	}
}

// WithColors overrides the base color palette.
func WithColors(colors Colors) Option {
	return func(t *Theme) {
		t.colors = colors
	}
}

// WithBorders overrides the border configuration.
func WithBorders(borders Borders) Option {
	return func(t *Theme) {
		t.borders = borders
	}
}

// New constructs a Theme with optional overrides applied.
func New(opts ...Option) Theme {
	defaults := []Option{
		WithColors(Colors{
			Info:       lipgloss.Color("#f8f8f8"),
			Success:    lipgloss.Color("#5dc796"),
			Warning:    lipgloss.Color("#e6c84f"),
			Error:      lipgloss.Color("#f04c56"),
			Numeric:    lipgloss.Color("#d7875f"),
			Choice:     lipgloss.Color("#8fc279"),
			InputLabel: lipgloss.Color("#5f87ff"),
			Column:     lipgloss.Color("#ff5f00"),
			Footer:     lipgloss.Color("#d7af87"),
			Key:        lipgloss.Color("#5fff5f"),
			Muted:      lipgloss.Color("#9ba8c0"),
		}),
		WithBorders(Borders{Data: lipgloss.RoundedBorder(), Legend: lipgloss.HiddenBorder()}),
		WithIconSet(defaultIconSet()),
	}

	t := Theme{fallback: asciiIcons.clone()}

	for _, opt := range append(defaults, opts...) {
		opt(&t)
	}

	if t.icons == nil {
		t.icons = defaultIconSet()
	}

	return t
}

// Default returns the default Theme configuration.
func Default() Theme {
	return New()
}

// Colors exposes the theme color palette.
func (t Theme) Colors() Colors {
	return t.colors
}

// Borders exposes the theme border configuration.
func (t Theme) Borders() Borders {
	return t.borders
}

// Icon returns a themed icon with ASCII fallback if unavailable.
func (t Theme) Icon(name string) string {
	if icon, ok := t.icons[name]; ok {
		return icon
	}
	if icon, ok := t.fallback[name]; ok {
		return icon
	}
	return ""
}

// IconSet returns a copy of the themed icon map.
func (t Theme) IconSet() IconSet {
	return t.icons.clone()
}

// Style returns the lipgloss style for a category. Unknown categories render
// unstyled.
func (t Theme) Style(c Category) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch c {
	case CategoryInfo:
		return base.Foreground(t.colors.Info)
	case CategorySuccess:
		return base.Foreground(t.colors.Success)
	case CategoryWarning:
		return base.Foreground(t.colors.Warning)
	case CategoryError:
		return base.Foreground(t.colors.Error)
	case CategoryNumeric:
		return base.Foreground(t.colors.Numeric)
	case CategoryChoice:
		return base.Foreground(t.colors.Choice)
	case CategoryInputLabel:
		return base.Foreground(t.colors.InputLabel)
	case CategoryColumn:
		return base.Foreground(t.colors.Column).Bold(true)
	case CategoryFooter:
		return base.Foreground(t.colors.Footer)
	case CategoryKey:
		return base.Foreground(t.colors.Key)
	default:
		return base
	}
}

// Wrap renders text in the style of the given category.
func (t Theme) Wrap(text string, c Category) string {
	if text == "" {
		return text
	}
	return t.Style(c).Render(text)
}

// MutedStyle is used for secondary hints such as key help.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Muted).Italic(true)
}

// StatusCategory maps an ADR status to the category used to color it.
func StatusCategory(status string) Category {
	switch status {
	case "accepted":
		return CategorySuccess
	case "proposed", "draft":
		return CategoryWarning
	case "rejected", "deprecated":
		return CategoryError
	case "superseded":
		return CategoryNumeric
	default:
		return CategoryInfo
	}
}

// defaultIconSet chooses the best icon set for the current terminal.
func defaultIconSet() IconSet {
	if isLimitedTerminal() {
		return asciiIcons.clone()
	}
	return emojiIcons.clone()
}

// isLimitedTerminal detects environments where ASCII icons are preferable.
func isLimitedTerminal() bool {
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
		return true
	}
	return runtime.GOOS == "windows"
}

var emojiIcons = IconSet{
	"accepted":   "✅",
	"proposed":   "📝",
	"draft":      "📝",
	"rejected":   "❌",
	"deprecated": "⚠️",
	"superseded": "🔁",
	"unknown":    "❓",
	"journal":    "📓",
	"arrows":     "↑↓←→",
}

var asciiIcons = IconSet{
	"accepted":   "[v]",
	"proposed":   "[?]",
	"draft":      "[~]",
	"rejected":   "[x]",
	"deprecated": "[!]",
	"superseded": "[>]",
	"unknown":    "[ ]",
	"journal":    "[J]",
	"arrows":     "^v<>",
}
