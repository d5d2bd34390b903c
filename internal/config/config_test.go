package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redactyl/piiguard/internal/anonymize"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "piiguard.yaml", "threads: 4\nmax_bytes: 123\ncase_sensitive: true\nmin_confidence: 0.9\nmask_char: \"#\"\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.CaseSensitive == nil || !*cfg.CaseSensitive {
		t.Fatalf("expected case_sensitive=true")
	}
	if cfg.MinConfidence == nil || *cfg.MinConfidence != 0.9 {
		t.Fatalf("expected min_confidence=0.9, got %#v", cfg.MinConfidence)
	}
	if cfg.MaskChar == nil || *cfg.MaskChar != "#" {
		t.Fatalf("expected mask_char=#, got %#v", cfg.MaskChar)
	}
	if cfg.Enable != nil {
		t.Fatalf("unset keys must stay nil")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "bad.yml", "threads: [\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "piiguard.yaml", "threads: 1\n")
	writeTemp(t, dir, ".piiguard.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .piiguard.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "piiguard")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "threads: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.Threads)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

const jobYAML = `name: Nightly
seed: 7
use_token_vault: true
tables:
  - table_name: users
    fields:
      - field_name: email
        field_type: email
        method: tokenize
      - field_name: age
        field_type: numeric
        method: generalize
        params:
          ranges: [[0, 18], [19, 30]]
`

func TestLoadJob_AppliesDefaults(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "job.yml", jobYAML)
	job, err := LoadJob(p)
	if err != nil {
		t.Fatalf("LoadJob: %v", err)
	}
	if job.Name != "Nightly" || job.Seed == nil || *job.Seed != 7 {
		t.Fatalf("unexpected job header: %+v", job)
	}
	if !job.PreserveNulls || !job.PreserveFormat || job.OutputFormat != anonymize.FormatJSON {
		t.Fatalf("defaults not applied: %+v", job)
	}
	if job.ConfigID == "" || job.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp")
	}
	users, ok := job.Table("users")
	if !ok || len(users.Fields) != 2 {
		t.Fatalf("unexpected tables: %+v", job.Tables)
	}

	a := anonymize.New(job)
	out, err := a.AnonymizeRecord(anonymize.Record{"age": 25, "email": "a@b.co"}, "users")
	if err != nil {
		t.Fatalf("anonymize: %v", err)
	}
	if out["age"] != "19-30" {
		t.Fatalf("expected YAML ranges to apply, got %v", out["age"])
	}
	if s, _ := out["email"].(string); !strings.HasPrefix(s, "TOK_EMAIL_") {
		t.Fatalf("expected token, got %v", out["email"])
	}
}

func TestLoadJob_RejectsUnknownMethod(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "job.yml", "tables:\n  - table_name: t\n    fields:\n      - field_name: a\n        field_type: text\n        method: scramble\n")
	if _, err := LoadJob(p); err == nil || !strings.Contains(err.Error(), "scramble") {
		t.Fatalf("expected unknown method error, got %v", err)
	}
}

func TestEmbeddedJob(t *testing.T) {
	body := "threads: 2\nanonymize:\n" + indent(jobYAML, "  ")
	cfg, err := LoadFile(writeTemp(t, t.TempDir(), "piiguard.yml", body))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	job, ok, err := cfg.Job()
	if err != nil || !ok {
		t.Fatalf("Job: ok=%v err=%v", ok, err)
	}
	if job.Name != "Nightly" || !job.PreserveNulls {
		t.Fatalf("unexpected job: %+v", job)
	}

	fromFile, err := LoadJob(writeTemp(t, t.TempDir(), "full.yml", body))
	if err != nil {
		t.Fatalf("LoadJob on full config: %v", err)
	}
	if fromFile.Name != "Nightly" {
		t.Fatalf("expected nested anonymize block to be read, got %q", fromFile.Name)
	}

	none, ok, err := FileConfig{}.Job()
	if ok || err != nil || none.Name != "" {
		t.Fatalf("expected no job")
	}
}

func TestWriteJobRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJob(&buf, anonymize.StagingCopyConfig()); err != nil {
		t.Fatalf("WriteJob: %v", err)
	}
	job, err := DecodeJob(&buf)
	if err != nil {
		t.Fatalf("DecodeJob: %v", err)
	}
	if job.Name != "Staging Copy" || job.Seed == nil || *job.Seed != 42 {
		t.Fatalf("unexpected job: %+v", job)
	}
	if got := job.TableNames(); len(got) != 2 || got[1] != "orders" {
		t.Fatalf("unexpected tables %v", got)
	}
}

func TestDetectorTemplateParses(t *testing.T) {
	cfg, err := LoadFile(writeTemp(t, t.TempDir(), "piiguard.yml", DetectorTemplate))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MinConfidence == nil || *cfg.MinConfidence != 0.8 {
		t.Fatalf("unexpected min_confidence %#v", cfg.MinConfidence)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
