package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	PendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	AccentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle    = lipgloss.NewStyle().Faint(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	DoneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
)

const (
	BoxChecked   = "☑"
	BoxUnchecked = "☐"

	symCheck = "✔"
	symCross = "✖"
)

// OK prints a success line.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, SuccessStyle.Render(symCheck+" "+msg)) }

// Fail prints an error line.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, ErrorStyle.Render(symCross+" "+msg)) }

// Muted prints a faint hint line.
func Muted(w io.Writer, msg string) { fmt.Fprintln(w, MutedStyle.Render(msg)) }
