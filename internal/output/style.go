package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"ai-governance-controls/internal/model"
)

var (
	colorPass    = lipgloss.Color("#2CD7C7")
	colorWarn    = lipgloss.Color("#F4D03F")
	colorFail    = lipgloss.Color("#E74C3C")
	colorOrange  = lipgloss.Color("#FF8C42")
	colorMuted   = lipgloss.Color("#6C7A80")
	colorHeading = lipgloss.Color("#20B9B4")
)

// Styles decorates console output. The zero-attribute styles of Plain
// render text unchanged.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Pass    lipgloss.Style
	Warn    lipgloss.Style
	Fail    lipgloss.Style
	High    lipgloss.Style
}

func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Heading: s, Bold: s, Muted: s, Pass: s, Warn: s, Fail: s, High: s}
}

func Colored() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorHeading),
		Heading: lipgloss.NewStyle().Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Pass:    lipgloss.NewStyle().Foreground(colorPass),
		Warn:    lipgloss.NewStyle().Foreground(colorWarn),
		Fail:    lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		High:    lipgloss.NewStyle().Foreground(colorOrange).Bold(true),
	}
}

// StylesFor picks Colored when w is a terminal.
func StylesFor(w io.Writer) Styles {
	if IsTerminal(w) {
		return Colored()
	}
	return Plain()
}

func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s Styles) status(passed bool) string {
	if passed {
		return s.Pass.Render("✅ PASS")
	}
	return s.Fail.Render("❌ FAIL")
}

func (s Styles) tier(t model.Tier) lipgloss.Style {
	switch t {
	case model.TierUnacceptable:
		return s.Fail
	case model.TierHigh:
		return s.High
	case model.TierLimited:
		return s.Warn
	default:
		return s.Pass
	}
}

var tierIcons = map[model.Tier]string{
	model.TierUnacceptable: "🔴",
	model.TierHigh:         "🟠",
	model.TierLimited:      "🟡",
	model.TierMinimal:      "🟢",
}

func tierIcon(t model.Tier) string {
	if i, ok := tierIcons[t]; ok {
		return i
	}
	return "⚪"
}
