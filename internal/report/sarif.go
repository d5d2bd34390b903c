package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/samber/lo"

	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

func sevToLevel(sev string) string {
	switch sev {
	case "high":
		return "error"
	case "medium":
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes findings as SARIF 2.1.0. Messages name the label only;
// matched text is not included.
func WriteSARIF(w io.Writer, findings []engine.Finding, version string) error {
	labels := lo.Uniq(lo.Map(findings, func(f engine.Finding, _ int) string { return f.Label }))
	sort.Strings(labels)
	index := map[string]int{}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "piiguard", Version: version, Rules: []sarifRule{}}},
		Results: []sarifResult{},
	}
	for i, l := range labels {
		index[l] = i
		desc := l + " personal data"
		if c := types.CategoryOf(l); c != "" {
			desc = c + ": " + desc
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{ID: l, ShortDescription: sarifMessage{Text: desc}})
	}
	for _, f := range findings {
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.Label,
			RuleIndex: index[f.Label],
			Level:     sevToLevel(Severity(f.Label)),
			Message:   sarifMessage{Text: f.Label + " detected"},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           sarifRegion{StartLine: f.Line, StartColumn: f.Column},
				},
			}},
		})
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
