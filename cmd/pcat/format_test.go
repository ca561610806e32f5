package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatOutputEmpty(t *testing.T) {
	if got := formatOutput(nil, Config{}, zap.NewNop()); got != "" {
		t.Fatalf("empty selection must produce an empty string, got %q", got)
	}
}

func TestFormatOutputSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	mustWriteFile(t, path, "print('hi')\n")

	got := formatOutput([]string{path}, Config{}, zap.NewNop())
	want := "### SOURCE CODE ###\n\n" +
		"```py\n" +
		"print('hi')\n" +
		"```\n\n" +
		"### SOURCE CODE END ###\n"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatOutputNoTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw")
	mustWriteFile(t, path, "no newline")

	got := formatOutput([]string{path}, Config{}, zap.NewNop())
	if !strings.Contains(got, "```txt\nno newline\n```\n") {
		t.Fatalf("content without a trailing newline must gain one before the fence, got %q", got)
	}
}

func TestFormatOutputWithPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	mustWriteFile(t, path, "package main\n")

	got := formatOutput([]string{path}, Config{WithPaths: true}, zap.NewNop())
	if !strings.Contains(got, "`"+path+"`\n```go\n") {
		t.Fatalf("expected backtick-wrapped path line before the fence, got %q", got)
	}
}

func TestFormatOutputLineNumbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "two.txt")
	mustWriteFile(t, path, "foo\nbar")

	got := formatOutput([]string{path}, Config{WithLineNumbers: true}, zap.NewNop())
	if !strings.Contains(got, "   1 | foo\n   2 | bar\n") {
		t.Fatalf("expected numbered lines, got %q", got)
	}
}

func TestNumberLinesNoPhantomLine(t *testing.T) {
	got := numberLines("foo\nbar\n")
	want := "   1 | foo\n   2 | bar"
	if got != want {
		t.Fatalf("trailing newline must not number an empty line: got %q, want %q", got, want)
	}
}

func TestNumberLinesCRLF(t *testing.T) {
	got := numberLines("foo\r\nbar\r\n")
	want := "   1 | foo\n   2 | bar"
	if got != want {
		t.Fatalf("CRLF terminators must not leak into numbered lines: got %q, want %q", got, want)
	}
}

func TestFormatOutputReadFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	third := filepath.Join(dir, "third.txt")
	mustWriteFile(t, first, "one\n")
	mustWriteFile(t, third, "three\n")
	// A directory in file position forces the read to fail.
	unreadable := filepath.Join(dir, "broken")
	if err := os.Mkdir(unreadable, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	got := formatOutput([]string{first, unreadable, third}, Config{}, logger)

	if !strings.Contains(got, "one\n") || !strings.Contains(got, "three\n") {
		t.Fatalf("surviving files must still render, got %q", got)
	}
	if strings.Contains(got, "broken") {
		t.Fatalf("the failed file must be skipped entirely, got %q", got)
	}
	if strings.Count(got, "### SOURCE CODE ###") != 1 || strings.Count(got, "### SOURCE CODE END ###") != 1 {
		t.Fatalf("header and footer must appear exactly once, got %q", got)
	}
	if logs.FilterMessage("could not read file").Len() != 1 {
		t.Fatalf("expected exactly one warning, got %d", logs.Len())
	}
}

func TestFormatOutputInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.txt")
	if err := os.WriteFile(path, []byte("ok\xff\xfe line\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got := formatOutput([]string{path}, Config{}, zap.NewNop())
	if !strings.Contains(got, "ok line\n") {
		t.Fatalf("invalid bytes must be dropped, not fatal, got %q", got)
	}
}

func TestFormatListOnly(t *testing.T) {
	got := formatListOnly([]string{"./a.txt", "b/c.go"})
	want := "./a.txt\nb/c.go\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if formatListOnly(nil) != "" {
		t.Fatalf("empty list-only output must be the empty string")
	}
}

func TestFenceTag(t *testing.T) {
	cases := map[string]string{
		"main.go":      "go",
		"script.py":    "py",
		"README":       "txt",
		"archive.tar":  "tar",
		"dir/file.tsx": "tsx",
	}
	for path, want := range cases {
		if got := fenceTag(path); got != want {
			t.Fatalf("fenceTag(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFormatOutputDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	mustWriteFile(t, a, "alpha\n")
	mustWriteFile(t, b, "beta")

	cfg := Config{WithPaths: true, WithLineNumbers: true}
	first := formatOutput([]string{a, b}, cfg, zap.NewNop())
	second := formatOutput([]string{a, b}, cfg, zap.NewNop())
	if first != second {
		t.Fatalf("repeated runs must be byte-identical")
	}
}
