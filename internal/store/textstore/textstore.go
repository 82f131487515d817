// Package textstore keeps the task list in a plain, hand-editable text file,
// one "<index>. <text>[ -s]" record per line.
//
// Every operation reads the whole file and, when it changes something, writes
// the whole result back. There is no locking; concurrent invocations against
// the same file may lose updates.
package textstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todotxt/internal/logging"
	"github.com/Makepad-fr/todotxt/internal/model"
)

// DataFileName is the name of the task file inside the data directory.
const DataFileName = "todo.txt"

// Store is the line-oriented record store backed by one file.
type Store struct {
	path string
	log  *log.Logger
}

// New returns a store for the file at path. The file is created on first write.
func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{path: path, log: logger}
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// -------------- operations ----------------

// Add appends text as a new record with index max+1 and returns it.
// Empty text is accepted.
func (s *Store) Add(text string) (model.Record, error) {
	content, err := s.read()
	if err != nil {
		return model.Record{}, err
	}
	rec := model.Record{Index: nextIndex(content), Text: text}

	line := rec.Line() + "\n"
	if content != "" && !strings.HasSuffix(content, "\n") {
		line = "\n" + line
	}
	if err := s.appendString(line); err != nil {
		return model.Record{}, err
	}
	s.log.Debug("added", "path", s.path, "index", rec.Index)
	return rec, nil
}

// Remove drops every line whose index equals index. Other lines, including
// ones that don't parse, are kept verbatim and in order.
func (s *Store) Remove(index uint64) error {
	return s.rewrite(index, "removed", func(string) (string, bool) {
		return "", false
	})
}

// SetDone adds or strips the done-marker on the record with the given index.
// Setting a record to the state it already has leaves its line unchanged.
func (s *Store) SetDone(index uint64, done bool) error {
	return s.rewrite(index, "set done", func(rest string) (string, bool) {
		text := model.WithDone(strings.TrimLeft(rest, " \t"), done)
		return model.Record{Index: index, Text: text}.Line(), true
	})
}

// Render formats every line for display and joins them with newlines.
// An empty result means the list has no items.
func (s *Store) Render() (string, error) {
	content, err := s.read()
	if err != nil {
		return "", err
	}
	var out []string
	for _, line := range splitLines(content) {
		if r, ok := model.RenderLine(line); ok {
			out = append(out, r)
		}
	}
	return strings.Join(out, "\n"), nil
}

// Records returns the well-formed records in file order. Lines without a
// numeric index are skipped.
func (s *Store) Records() ([]model.Record, error) {
	content, err := s.read()
	if err != nil {
		return nil, err
	}
	recs := []model.Record{}
	for _, line := range splitLines(content) {
		if r, ok := model.ParseRecord(line); ok {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

// Clear truncates the file to zero bytes.
func (s *Store) Clear() error {
	if err := s.truncate(); err != nil {
		return err
	}
	s.log.Debug("cleared", "path", s.path)
	return nil
}

// -------------- helpers ----------------

// rewrite applies edit to each line whose index matches and writes the result
// back. edit receives the text after the index period and returns the
// replacement line, or false to drop the line. Nothing is written when no
// line matches.
func (s *Store) rewrite(index uint64, what string, edit func(rest string) (string, bool)) error {
	content, err := s.read()
	if err != nil {
		return err
	}

	var b strings.Builder
	found := false
	for _, line := range splitLines(content) {
		n, rest, ok := model.ParseIndex(line)
		if ok && n == index {
			found = true
			if repl, keep := edit(rest); keep {
				b.WriteString(repl)
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if !found {
		s.log.Debug("no match", "path", s.path, "index", index)
		return &NotFoundError{Index: index}
	}
	if err := s.replace(b.String()); err != nil {
		return err
	}
	s.log.Debug(what, "path", s.path, "index", index)
	return nil
}

// nextIndex is one more than the largest index in content, or 1.
func nextIndex(content string) uint64 {
	var highest uint64
	for _, line := range splitLines(content) {
		if n, _, ok := model.ParseIndex(line); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// splitLines splits on "\n", dropping the terminator of the last line and any
// "\r" left by CRLF files.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// -------------- file access ----------------

// read returns the whole file; a missing file reads as empty.
func (s *Store) read() (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", &IOError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", &IOError{Op: "read", Path: s.path, Err: err}
	}
	return string(b), nil
}

// appendString writes data at the end of the file without touching what's
// there, creating the file if needed.
func (s *Store) appendString(data string) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: s.path, Err: err}
	}
	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}

// replace swaps in data as the new file content. It goes through a temp file
// in the same directory and a rename, so a failed write leaves the old
// content in place.
func (s *Store) replace(data string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create temp", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}
	if fi, err := os.Stat(s.path); err == nil {
		_ = os.Chmod(tmpPath, fi.Mode().Perm())
	} else {
		_ = os.Chmod(tmpPath, 0o644)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &IOError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

// truncate empties the file, creating it if needed.
func (s *Store) truncate() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "truncate", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}
