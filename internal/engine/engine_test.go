package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/types"
)

func emails(fs []Finding) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Label == types.Email {
			out = append(out, f)
		}
	}
	return out
}

// Basic end-to-end: a file with an email yields a located finding.
func TestScan_Basic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"notes.txt": "first line\nContact me at john.doe@example.com for more info\n",
	})
	var progress atomic.Int32
	res, err := Scan(context.Background(), Config{Root: dir, Threads: 2, NoCache: true, Progress: func() { progress.Add(1) }}, detectors.New())
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if res.FilesScanned != 1 || progress.Load() != 1 {
		t.Fatalf("expected 1 file scanned, got %d (progress %d)", res.FilesScanned, progress.Load())
	}
	got := emails(res.Findings)
	if len(got) != 1 {
		t.Fatalf("expected one email finding, got %+v", res.Findings)
	}
	f := got[0]
	if f.Path != "notes.txt" || f.Line != 2 || f.Column != 15 || f.Text != "john.doe@example.com" {
		t.Fatalf("unexpected finding %+v", f)
	}
}

func TestScan_DuplicatesAndOrdering(t *testing.T) {
	dir := t.TempDir()
	body := "Contact me at john.doe@example.com for more info\n"
	writeTree(t, dir, map[string]string{
		"b/copy.txt": body,
		"a.txt":      body,
		"empty.txt":  "nothing to see here\n",
	})
	res, err := Scan(context.Background(), Config{Root: dir, Threads: 4, NoCache: true}, detectors.New())
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesScanned != 3 || res.Duplicates != 1 {
		t.Fatalf("expected 3 files with 1 duplicate, got %d/%d", res.FilesScanned, res.Duplicates)
	}
	got := emails(res.Findings)
	if len(got) != 2 || got[0].Path != "a.txt" || got[1].Path != "b/copy.txt" {
		t.Fatalf("expected findings for both copies in path order, got %+v", got)
	}
	if len(res.Entities()) != len(res.Findings) {
		t.Fatalf("entities and findings differ in length")
	}
}

func TestScan_CacheReuse(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "SSN: 123-45-6789\n"})
	det := detectors.New()
	first, err := Scan(context.Background(), Config{Root: dir}, det)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHits != 0 {
		t.Fatalf("first scan should not hit the cache")
	}
	if _, err := os.Stat(filepath.Join(dir, ".piiguard-cache.json")); err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	second, err := Scan(context.Background(), Config{Root: dir}, det)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHits != 1 || second.FilesScanned != 1 {
		t.Fatalf("expected one cache hit over one file, got %+v", second)
	}
	if len(first.Findings) == 0 || len(second.Findings) != len(first.Findings) {
		t.Fatalf("cached findings differ: %+v vs %+v", second.Findings, first.Findings)
	}
	for i := range first.Findings {
		if second.Findings[i].Text != first.Findings[i].Text || second.Findings[i].Label != first.Findings[i].Label {
			t.Fatalf("cached finding %d differs: %+v vs %+v", i, second.Findings[i], first.Findings[i])
		}
	}

	third, err := Scan(context.Background(), Config{Root: dir}, detectors.New(detectors.WithMinConfidence(0.5)))
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHits != 0 {
		t.Fatalf("changed settings must not reuse the cache")
	}
}

func TestScan_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, Config{Root: dir, NoCache: true}, detectors.New()); err == nil {
		t.Fatalf("expected an error from a cancelled scan")
	}
}

func TestLocate(t *testing.T) {
	data := []byte("héllo\nab x@y.io\n\nzz 123")
	es := []types.Entity{
		{Start: 10, End: 16, Text: "x@y.io"},
		{Start: 21, End: 24, Text: "123"},
	}
	fs := locate("f", data, es)
	if fs[0].Line != 2 || fs[0].Column != 4 {
		t.Fatalf("first: %+v", fs[0])
	}
	if fs[1].Line != 4 || fs[1].Column != 4 {
		t.Fatalf("second: %+v", fs[1])
	}
}

func TestWorkers(t *testing.T) {
	if workers(1) != 1 || workers(100) != 32 || workers(0) < 1 {
		t.Fatalf("unexpected worker clamp")
	}
}

func TestFastHash(t *testing.T) {
	if fastHash(nil) != "0000000000000000" {
		t.Fatalf("empty hash")
	}
	if h := fastHash([]byte("a")); len(h) != 16 || h == fastHash([]byte("b")) {
		t.Fatalf("unexpected hash %q", h)
	}
}
