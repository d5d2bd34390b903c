package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/samber/lo"

	"github.com/redactyl/piiguard/internal/engine"
)

// Baseline records accepted findings by digest so the file itself holds no PII.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []engine.Finding) error {
	b := Baseline{Items: lo.Associate(findings, func(f engine.Finding) (string, bool) { return key(f), true })}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0600)
}

func FilterNewFindings(findings []engine.Finding, base Baseline) []engine.Finding {
	return lo.Reject(findings, func(f engine.Finding, _ int) bool { return base.Items[key(f)] })
}

func key(f engine.Finding) string {
	sum := sha256.Sum256([]byte(f.Path + "\x00" + f.Label + "\x00" + f.Text))
	return hex.EncodeToString(sum[:16])
}

// ShouldFail reports whether any finding reaches the failOn severity
// (low, medium or high; medium when unrecognized).
func ShouldFail(findings []engine.Finding, failOn string) bool {
	level := map[string]int{"low": 1, "medium": 2, "high": 3}
	th := level[failOn]
	if th == 0 {
		th = 2
	}
	return lo.ContainsBy(findings, func(f engine.Finding) bool { return level[Severity(f.Label)] >= th })
}
