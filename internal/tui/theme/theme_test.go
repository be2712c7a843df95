package theme

import (
	"runtime"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

func TestIconSetCloneCreatesIndependentCopy(t *testing.T) {
	source := IconSet{"accepted": "✅"}
	clone := source.clone()

	source["accepted"] = "mutated"

	if got, want := clone["accepted"], "✅"; got != want {
		t.Errorf("IconSet.clone(%v)[%q] = %q, want %q", source, "accepted", got, want)
	}
}

func TestThemeIconSetDefensiveCopy(t *testing.T) {
	icons := IconSet{"accepted": "✅"}
	theme := New(WithIconSet(icons))

	icons["accepted"] = "mutated"

	if got, want := theme.Icon("accepted"), "✅"; got != want {
		t.Errorf("WithIconSet(%v) Icon(%q) = %q, want %q", icons, "accepted", got, want)
	}

	exposed := theme.IconSet()
	exposed["accepted"] = "changed"

	if got, want := theme.Icon("accepted"), "✅"; got != want {
		t.Errorf("IconSet() mutation impacted Icon(%q) = %q, want %q", "accepted", got, want)
	}
}

func TestThemeIconLookupOrder(t *testing.T) {
	theme := Theme{
		icons:    IconSet{"primary": "icon"},
		fallback: IconSet{"fallback": "fallback-icon"},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "primary", key: "primary", want: "icon"},
		{name: "fallback", key: "fallback", want: "fallback-icon"},
		{name: "missing", key: "missing", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := theme.Icon(tc.key); got != tc.want {
				t.Errorf("Theme.Icon(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestNewAppliesCustomOptions(t *testing.T) {
	customColors := Colors{
		Info:    lipgloss.Color("#111111"),
		Success: lipgloss.Color("#222222"),
		Error:   lipgloss.Color("#333333"),
	}
	customBorder := Borders{Data: lipgloss.ThickBorder(), Legend: lipgloss.NormalBorder()}
	customIcons := IconSet{"custom": "icon"}

	theme := New(
		WithColors(customColors),
		WithBorders(customBorder),
		WithIconSet(customIcons),
	)

	if diff := cmp.Diff(customColors, theme.Colors()); diff != "" {
		t.Errorf("New(...) Colors() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(customBorder, theme.Borders()); diff != "" {
		t.Errorf("New(...) Borders() mismatch (-want +got):\n%s", diff)
	}

	if got, want := theme.Icon("custom"), "icon"; got != want {
		t.Errorf("New(...) Icon(%q) = %q, want %q", "custom", got, want)
	}
}

func TestNewRestoresNilIconSet(t *testing.T) {
	theme := New(WithIconSet(nil))
	want := defaultIconSet()["accepted"]

	if got := theme.Icon("accepted"); got != want {
		t.Errorf("New(WithIconSet(nil)) Icon(%q) = %q, want %q", "accepted", got, want)
	}
}

func TestStyleUsesCategoryColor(t *testing.T) {
	theme := New()
	colors := theme.Colors()

	tests := []struct {
		category Category
		want     lipgloss.TerminalColor
	}{
		{CategoryInfo, colors.Info},
		{CategorySuccess, colors.Success},
		{CategoryWarning, colors.Warning},
		{CategoryError, colors.Error},
		{CategoryNumeric, colors.Numeric},
		{CategoryChoice, colors.Choice},
		{CategoryInputLabel, colors.InputLabel},
		{CategoryColumn, colors.Column},
		{CategoryFooter, colors.Footer},
		{CategoryKey, colors.Key},
	}

	for _, tc := range tests {
		t.Run(tc.category.String(), func(t *testing.T) {
			if got := theme.Style(tc.category).GetForeground(); got != tc.want {
				t.Errorf("Style(%v).GetForeground() = %v, want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestColumnStyleIsBold(t *testing.T) {
	if !New().Style(CategoryColumn).GetBold() {
		t.Error("Style(CategoryColumn).GetBold() = false, want true")
	}
}

func TestWrapKeepsEmptyText(t *testing.T) {
	if got := New().Wrap("", CategorySuccess); got != "" {
		t.Errorf("Wrap(%q) = %q, want empty", "", got)
	}
}

func TestWrapKeepsPlainText(t *testing.T) {
	got := New().Wrap("hello", CategorySuccess)
	if lipgloss.Width(got) != len("hello") {
		t.Errorf("Wrap(%q) width = %d, want %d", "hello", lipgloss.Width(got), len("hello"))
	}
}

func TestCategoryStringUnknown(t *testing.T) {
	if got := Category(99).String(); got != "unknown" {
		t.Errorf("Category(99).String() = %q, want %q", got, "unknown")
	}
}

func TestStatusCategory(t *testing.T) {
	tests := map[string]Category{
		"accepted":   CategorySuccess,
		"proposed":   CategoryWarning,
		"draft":      CategoryWarning,
		"rejected":   CategoryError,
		"deprecated": CategoryError,
		"superseded": CategoryNumeric,
		"":           CategoryInfo,
	}

	for status, want := range tests {
		if got := StatusCategory(status); got != want {
			t.Errorf("StatusCategory(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestDefaultIconSetHonorsLimitedTerminal(t *testing.T) {
	t.Setenv("SSH_CLIENT", "")
	t.Setenv("SSH_TTY", "")
	t.Setenv("SSH_CONNECTION", "")

	want := emojiIcons
	if runtime.GOOS == "windows" {
		want = asciiIcons
	}
	if diff := cmp.Diff(want, defaultIconSet()); diff != "" {
		t.Errorf("defaultIconSet() mismatch (-want +got):\n%s", diff)
	}

	t.Setenv("SSH_TTY", "/dev/pts/1")
	if diff := cmp.Diff(asciiIcons, defaultIconSet()); diff != "" {
		t.Errorf("defaultIconSet() over ssh mismatch (-want +got):\n%s", diff)
	}
}
