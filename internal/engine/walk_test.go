package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func walked(t *testing.T, cfg Config) []string {
	t.Helper()
	var got []string
	if err := Walk(context.Background(), cfg, func(path string, _ []byte) { got = append(got, path) }); err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	return got
}

func TestWalk_WithIncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":          "hello",
		"data/b.csv":     "id,email\n",
		"docs/c.md":      "doc",
		"docs/deep/d.md": "doc",
	})

	got := walked(t, Config{Root: dir, IncludeGlobs: "**/*.csv"})
	if len(got) != 1 || got[0] != "data/b.csv" {
		t.Fatalf("include globs failed, got %v", got)
	}

	got = walked(t, Config{Root: dir, ExcludeGlobs: "**/*.md"})
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "data/b.csv" {
		t.Fatalf("exclude globs failed, got %v", got)
	}
}

func TestWalk_IgnoreFileAndDirective(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		IgnoreFile:           "# fixtures\nfixtures/\n*.log\n",
		"keep.txt":           "hello",
		"app.log":            "x",
		"fixtures/users.csv": "id\n",
		"skip.txt":           "generated // piiguard:ignore-file\n",
	})
	got := walked(t, Config{Root: dir, DefaultExcludes: true})
	if len(got) != 1 || got[0] != "keep.txt" {
		t.Fatalf("expected only keep.txt, got %v", got)
	}
}

func TestWalk_SkipsBinaryLargeAndDefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"text.txt":             "plain",
		"blob.dat":             "ab\x00cd",
		"big.txt":              string(make([]byte, 64)),
		"node_modules/x/a.txt": "dep",
		"yarn.lock":            "lock",
		"image.png":            "\x89PNG\r\n\x1a\nxxxx",
	})
	got := walked(t, Config{Root: dir, MaxBytes: 32, DefaultExcludes: true})
	if len(got) != 1 || got[0] != "text.txt" {
		t.Fatalf("unexpected files %v", got)
	}

	got = walked(t, Config{Root: dir})
	want := []string{"node_modules/x/a.txt", "text.txt", "yarn.lock"}
	if len(got) != len(want) {
		t.Fatalf("without default excludes got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("without default excludes got %v, want %v", got, want)
		}
	}
}

func TestWalk_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"one.txt": "hello"})
	got := walked(t, Config{Root: filepath.Join(dir, "one.txt")})
	if len(got) != 1 || got[0] != "one.txt" {
		t.Fatalf("got %v", got)
	}
}

func TestWalk_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Walk(ctx, Config{Root: dir}, func(string, []byte) {})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCountTargets(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":       "x",
		"b.csv":       "y",
		"vendor/c.go": "z",
	})
	n, err := CountTargets(Config{Root: dir, DefaultExcludes: true})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
	n, _ = CountTargets(Config{Root: dir, IncludeGlobs: "*.csv"})
	if n != 1 {
		t.Fatalf("expected 1 csv target, got %d", n)
	}
}
