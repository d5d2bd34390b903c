package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/types"
)

func sampleFindings() []engine.Finding {
	return []engine.Finding{
		{Path: "b.txt", Line: 2, Column: 1, Entity: types.Entity{Text: "123-45-6789", Label: types.SSN, Start: 20, End: 31, Confidence: 0.97}},
		{Path: "a.txt", Line: 1, Column: 5, Entity: types.Entity{Text: "john.doe@example.com", Label: types.Email, Start: 4, End: 24, Confidence: 0.95}},
	}
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No PII found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true, FilesScanned: 2})
	out := buf.String()
	if !strings.Contains(out, "Findings: 2 (high: 1, medium: 1, low: 0)") {
		t.Fatalf("expected severity footer; got: %q", out)
	}
	if strings.Index(out, "a.txt:1:5") > strings.Index(out, "b.txt:2:1") {
		t.Fatalf("expected findings sorted by path; got: %q", out)
	}
	if strings.Contains(out, "john.doe@example.com") || !strings.Contains(out, "jo…om") {
		t.Fatalf("expected masked values; got: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes with NoColor; got: %q", out)
	}

	buf.Reset()
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true, ShowValues: true})
	if !strings.Contains(buf.String(), "john.doe@example.com") {
		t.Fatalf("expected raw values with ShowValues; got: %q", buf.String())
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, sampleFindings(), PrintOptions{NoColor: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "EMAIL") || !strings.Contains(out, "a.txt:1:5") {
		t.Fatalf("expected rows in table; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, nil, PrintOptions{Duration: time.Second, FilesScanned: 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No PII found") || !strings.Contains(buf.String(), "Files scanned: 3") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestPrintEntitiesAndStats(t *testing.T) {
	text := "Contact john@example.com, SSN 123-45-6789"
	es := detectors.New().Detect(text)
	var buf bytes.Buffer
	PrintEntities(&buf, es, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "EMAIL") || !strings.Contains(buf.String(), "[8:24]") {
		t.Fatalf("unexpected entities output: %q", buf.String())
	}

	buf.Reset()
	PrintStats(&buf, detectors.Statistics(es), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Entities: ") || !strings.Contains(out, "SSN") || !strings.Contains(out, "Languages: en=") {
		t.Fatalf("unexpected stats output: %q", out)
	}

	buf.Reset()
	PrintEntities(&buf, nil, PrintOptions{})
	if !strings.Contains(buf.String(), "No PII found") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestPrintAnonymizeSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintAnonymizeSummary(&buf, anonymize.Result{OriginalCount: 3, AnonymizedCount: 2, FieldsProcessed: 8, Errors: []string{"Record 1: boom"}}, PrintOptions{NoColor: true})
	out := buf.String()
	for _, want := range []string{"Records: 2 anonymized of 3", "Fields processed: 8", "Record 1: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestSeverity(t *testing.T) {
	cases := map[string]string{
		types.SSN:          "high",
		types.CreditCard:   "high",
		types.Email:        "medium",
		types.EmployeeID:   "medium",
		types.LicensePlate: "low",
		"CUSTOM":           "low",
	}
	for label, want := range cases {
		if got := Severity(label); got != want {
			t.Fatalf("Severity(%s) = %s, want %s", label, got, want)
		}
	}
}

func TestBaselineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	fs := sampleFindings()
	if err := SaveBaseline(path, fs[:1]); err != nil {
		t.Fatal(err)
	}
	base, err := LoadBaseline(path)
	if err != nil {
		t.Fatal(err)
	}
	fresh := FilterNewFindings(fs, base)
	if len(fresh) != 1 || fresh[0].Path != "a.txt" {
		t.Fatalf("expected only the unbaselined finding, got %+v", fresh)
	}
	if _, err := LoadBaseline(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing baseline")
	}
}

func TestShouldFail(t *testing.T) {
	fs := sampleFindings()
	if !ShouldFail(fs, "high") {
		t.Fatalf("SSN should fail at high")
	}
	if ShouldFail(fs[1:], "high") {
		t.Fatalf("email should not fail at high")
	}
	if !ShouldFail(fs[1:], "") {
		t.Fatalf("email should fail at the default medium threshold")
	}
}

func TestPrintCategories(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintCategories(&buf, types.Categories()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Financial") || !strings.Contains(out, "CREDIT_CARD") {
		t.Fatalf("unexpected catalog output: %q", out)
	}
}
