package output

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tidynest/hypr-keybind-manager/internal/danger"
)

// colorEnabled controls whether badges render with ANSI colors.
var colorEnabled atomic.Bool

func init() {
	colorEnabled.Store(term.IsTerminal(int(os.Stdout.Fd())))
}

// SetColorMode applies the color setting: auto | always | never.
func SetColorMode(mode string) {
	switch mode {
	case "always":
		colorEnabled.Store(true)
	case "never":
		colorEnabled.Store(false)
	default:
		colorEnabled.Store(term.IsTerminal(int(os.Stdout.Fd())))
	}
}

var (
	badgeSafe = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("2")).
			Bold(true).
			Padding(0, 1)
	badgeSuspicious = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("3")).
			Bold(true).
			Padding(0, 1)
	badgeDangerous = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("208")).
			Bold(true).
			Padding(0, 1)
	badgeCritical = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Bold(true).
			Padding(0, 1)
)

// RenderLevelBadge renders a risk level as a colored badge, or plain
// upper-case text when colors are off.
func RenderLevelBadge(level danger.Level) string {
	label := strings.ToUpper(level.String())
	if !colorEnabled.Load() {
		return label
	}
	switch level {
	case danger.Critical:
		return badgeCritical.Render(label)
	case danger.Dangerous:
		return badgeDangerous.Render(label)
	case danger.Suspicious:
		return badgeSuspicious.Render(label)
	default:
		return badgeSafe.Render(label)
	}
}

// RenderSeverityBadge renders a validation severity name as a badge.
func RenderSeverityBadge(severity string) string {
	label := strings.ToUpper(severity)
	if !colorEnabled.Load() {
		return label
	}
	switch strings.ToLower(severity) {
	case "error":
		return badgeCritical.Render(label)
	case "warning":
		return badgeDangerous.Render(label)
	default:
		return badgeSafe.Render(label)
	}
}
