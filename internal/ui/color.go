package ui

import (
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape sequences from s.
func StripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

var plain bool

// SetColorMode applies "auto", "always" or "never" to every style in the
// package. Unknown modes behave like auto.
func SetColorMode(mode string) {
	plain = false
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		plain = true
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
}

// Plain reports whether output must carry no escape sequences at all.
func Plain() bool { return plain }

// Text returns s unchanged, or stripped of escapes when color is off.
func Text(s string) string {
	if plain {
		return StripANSI(s)
	}
	return s
}
