package textstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), DataFileName), nil)
}

func readFile(t *testing.T, s *Store) string {
	t.Helper()
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	return string(b)
}

func writeFile(t *testing.T, s *Store, content string) {
	t.Helper()
	if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}
}

func mustAdd(t *testing.T, s *Store, text string) uint64 {
	t.Helper()
	rec, err := s.Add(text)
	if err != nil {
		t.Fatalf("add %q: %v", text, err)
	}
	return rec.Index
}

func TestAddOnEmptyStore(t *testing.T) {
	s := setupStore(t)

	rec, err := s.Add("water plants")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Index != 1 || rec.Text != "water plants" || rec.Done {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if got := readFile(t, s); got != "1. water plants\n" {
		t.Fatalf("file = %q, want %q", got, "1. water plants\n")
	}
	out, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "1. water plants" {
		t.Fatalf("render = %q", out)
	}
}

func TestIndexNeverReused(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	if err := s.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := readFile(t, s); got != "2. b\n" {
		t.Fatalf("file after remove = %q", got)
	}
	if idx := mustAdd(t, s, "c"); idx != 3 {
		t.Fatalf("next index = %d, want 3", idx)
	}
	if err := s.Remove(3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// the highest index is gone now, so max+1 is 3 again
	if idx := mustAdd(t, s, "d"); idx != 3 {
		t.Fatalf("next index = %d, want 3", idx)
	}
}

func TestIndexMonotonicAcrossGaps(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "4. four\n9. nine\n2. two\n")
	if idx := mustAdd(t, s, "ten"); idx != 10 {
		t.Fatalf("next index = %d, want 10", idx)
	}
}

func TestAddKeepsTextAsGiven(t *testing.T) {
	s := setupStore(t)
	text := `say "hi", then: 3. leave; ok?`
	rec, err := s.Add(text)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Text != text {
		t.Fatalf("text = %q, want %q", rec.Text, text)
	}
	if got := readFile(t, s); got != "1. "+text+"\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestAddEmptyText(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "")
	if got := readFile(t, s); got != "1. \n" {
		t.Fatalf("file = %q, want %q", got, "1. \n")
	}
}

func TestAddAfterMissingTrailingNewline(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "1. hand edited")
	mustAdd(t, s, "next")
	if got := readFile(t, s); got != "1. hand edited\n2. next\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestSetDoneRoundTrip(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "read book")

	if err := s.SetDone(1, true); err != nil {
		t.Fatalf("done: %v", err)
	}
	if got := readFile(t, s); got != "1. read book -s\n" {
		t.Fatalf("file after done = %q", got)
	}
	out, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "1. \033[9mread book\033[0m" {
		t.Fatalf("render = %q", out)
	}

	if err := s.SetDone(1, false); err != nil {
		t.Fatalf("undone: %v", err)
	}
	if got := readFile(t, s); got != "1. read book\n" {
		t.Fatalf("file after undone = %q", got)
	}
}

func TestSetDoneIdempotent(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "x")

	for _, done := range []bool{true, false} {
		if err := s.SetDone(1, done); err != nil {
			t.Fatalf("set done=%v: %v", done, err)
		}
		once := readFile(t, s)
		if err := s.SetDone(1, done); err != nil {
			t.Fatalf("set done=%v again: %v", done, err)
		}
		if twice := readFile(t, s); twice != once {
			t.Fatalf("done=%v not idempotent: %q then %q", done, once, twice)
		}
	}
}

func TestRemovePreservesOthers(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "1. one\nnotes without index\n2. two -s\nx. bad head\n\n3. three\n")

	if err := s.Remove(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := "1. one\nnotes without index\nx. bad head\n\n3. three\n"
	if got := readFile(t, s); got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}

func TestSetDoneLeavesOtherLines(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "1. one\njunk\n2. two\n")
	if err := s.SetDone(2, true); err != nil {
		t.Fatalf("done: %v", err)
	}
	if got := readFile(t, s); got != "1. one\njunk\n2. two -s\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestNotFound(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "only")
	before := readFile(t, s)

	err := s.Remove(99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove err = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Index != 99 {
		t.Fatalf("expected NotFoundError for 99, got %v", err)
	}

	if err := s.SetDone(42, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("done err = %v, want ErrNotFound", err)
	}
	if after := readFile(t, s); after != before {
		t.Fatalf("file changed on not-found: %q -> %q", before, after)
	}
}

func TestNotFoundOnMissingFile(t *testing.T) {
	s := setupStore(t)
	if err := s.Remove(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file should not be created on not-found, stat err = %v", err)
	}
}

func TestClear(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := readFile(t, s); got != "" {
		t.Fatalf("file after clear = %q", got)
	}
	out, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("render after clear = %q", out)
	}
	if idx := mustAdd(t, s, "fresh"); idx != 1 {
		t.Fatalf("index after clear = %d, want 1", idx)
	}
}

func TestRenderDropsLinesWithoutSpace(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "1. buy milk\norphan\n2. done thing -s\n")
	out, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("render lines = %q", lines)
	}
	if !strings.HasSuffix(lines[0], "buy milk") || strings.Contains(lines[0], "\033[9m") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "2. \033[9mdone thing\033[0m" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRecords(t *testing.T) {
	s := setupStore(t)
	writeFile(t, s, "1. a\njunk\n3. c -s\n")
	recs, err := s.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %+v", recs)
	}
	if recs[0].Index != 1 || recs[0].Text != "a" || recs[0].Done {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[1].Index != 3 || recs[1].Text != "c" || !recs[1].Done {
		t.Errorf("recs[1] = %+v", recs[1])
	}
}

func TestRecordsMissingFile(t *testing.T) {
	s := setupStore(t)
	recs, err := s.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records = %+v", recs)
	}
}

func TestIOFailure(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing-dir", DataFileName), nil)
	_, err := s.Add("x")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("add err = %v, want IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("IOError should unwrap to ErrNotExist, got %v", err)
	}
}

func TestRewriteLeavesNoTempFiles(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	if err := s.SetDone(1, true); err != nil {
		t.Fatalf("done: %v", err)
	}
	if err := s.Remove(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != DataFileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("dir entries = %v", names)
	}
}
