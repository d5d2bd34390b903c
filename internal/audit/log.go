// Package audit appends one JSON line per piiguard run. Records carry counts
// and locations only; matched values are never written.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/report"
)

const FileName = "piiguard_audit.jsonl"

type RunRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	RunID          string           `json:"run_id"`
	Command        string           `json:"command"`
	Root           string           `json:"root,omitempty"`
	TotalFindings  int              `json:"total_findings"`
	NewFindings    int              `json:"new_findings"`
	BaselinedCount int              `json:"baselined_count"`
	SeverityCounts map[string]int   `json:"severity_counts,omitempty"`
	LabelCounts    map[string]int   `json:"label_counts,omitempty"`
	FilesScanned   int              `json:"files_scanned"`
	Records        int              `json:"records,omitempty"`
	Anonymized     int              `json:"anonymized,omitempty"`
	Errors         int              `json:"errors,omitempty"`
	Table          string           `json:"table,omitempty"`
	Duration       string           `json:"duration"`
	BaselineFile   string           `json:"baseline_file,omitempty"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

type FindingSummary struct {
	Path     string `json:"path"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog places the log under root/.git when present, else in root.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, "."+FileName)
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, FileName)
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns records newest first. Malformed lines are skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}
	return lo.Reverse(records), nil
}

func (a *AuditLog) Log(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index in LoadHistory order.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = lo.Reverse(append(records[:index], records[index+1:]...))

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateScanRecord summarizes a directory scan. newFindings are the findings
// not covered by the baseline.
func CreateScanRecord(
	root string,
	allFindings []engine.Finding,
	newFindings []engine.Finding,
	filesScanned int,
	duration time.Duration,
	baselineFile string,
) RunRecord {
	top := lo.Map(lo.Subset(newFindings, 0, 10), func(f engine.Finding, _ int) FindingSummary {
		return FindingSummary{Path: f.Path, Label: f.Label, Severity: report.Severity(f.Label), Line: f.Line}
	})
	return RunRecord{
		Timestamp:      time.Now().UTC(),
		Command:        "scan",
		Root:           root,
		TotalFindings:  len(allFindings),
		NewFindings:    len(newFindings),
		BaselinedCount: len(allFindings) - len(newFindings),
		SeverityCounts: lo.CountValuesBy(allFindings, func(f engine.Finding) string { return report.Severity(f.Label) }),
		LabelCounts:    lo.CountValuesBy(allFindings, func(f engine.Finding) string { return f.Label }),
		FilesScanned:   filesScanned,
		Duration:       duration.String(),
		BaselineFile:   baselineFile,
		TopFindings:    top,
	}
}

// CreateAnonymizeRecord summarizes a batch anonymization of table.
func CreateAnonymizeRecord(table string, res anonymize.Result) RunRecord {
	return RunRecord{
		Timestamp:  time.Now().UTC(),
		Command:    "anonymize",
		Table:      table,
		Records:    res.OriginalCount,
		Anonymized: res.AnonymizedCount,
		Errors:     len(res.Errors),
		Duration:   res.Duration.String(),
	}
}
