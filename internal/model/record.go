package model

import (
	"strconv"
	"strings"
)

// DoneMarker is the trailing token that marks a record as done.
// On disk it follows the text, separated by a single space.
const DoneMarker = "-s"

const (
	strikeOn  = "\033[9m"
	strikeOff = "\033[0m"
)

// Record is one task line: "<index>. <text>[ -s]".
type Record struct {
	Index uint64
	Text  string
	Done  bool
}

// Line encodes the record the way it is stored, without a newline.
func (r Record) Line() string {
	s := strconv.FormatUint(r.Index, 10) + ". " + r.Text
	if r.Done {
		s += " " + DoneMarker
	}
	return s
}

// ParseIndex splits a line at its first period and parses the head as the
// record index. rest is everything after the period, untrimmed.
func ParseIndex(line string) (index uint64, rest string, ok bool) {
	head, rest, found := strings.Cut(line, ".")
	if !found {
		return 0, "", false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(head), 10, 64)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

// ParseRecord decodes a stored line. Lines without a numeric index are
// reported as not ok and should be treated as opaque.
func ParseRecord(line string) (Record, bool) {
	n, rest, ok := ParseIndex(line)
	if !ok {
		return Record{}, false
	}
	text, done := SplitDone(strings.TrimLeft(rest, " \t"))
	return Record{Index: n, Text: text, Done: done}, true
}

// SplitDone strips a trailing done-marker (and its separating space) from s.
// Text that itself ends in " -s" can't be told apart from a done record.
func SplitDone(s string) (text string, done bool) {
	if s == DoneMarker {
		return "", true
	}
	if t, found := strings.CutSuffix(s, " "+DoneMarker); found {
		return t, true
	}
	return s, false
}

// WithDone returns s with the done-marker added or removed. It is a no-op
// when s is already in the requested state.
func WithDone(s string, done bool) string {
	text, isDone := SplitDone(s)
	switch {
	case done && !isDone:
		return s + " " + DoneMarker
	case !done && isDone:
		return text
	}
	return s
}

// RenderLine formats one stored line for the terminal. The leading token is
// kept as-is; done records have the marker dropped and their text struck
// through. Lines without a space carry no text and are dropped.
func RenderLine(line string) (string, bool) {
	number, rest, found := strings.Cut(line, " ")
	if !found {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	if text, done := SplitDone(rest); done {
		return number + " " + Strike(strings.TrimSpace(text)), true
	}
	return number + " " + rest, true
}

// Strike wraps s in the terminal strikethrough sequence.
func Strike(s string) string { return strikeOn + s + strikeOff }
