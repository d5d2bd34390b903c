package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	// ShowValues prints matched text instead of a masked preview.
	ShowValues bool
}

var (
	highStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	medStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Severity ranks a label by the harm of disclosure: high, medium or low.
func Severity(label string) string {
	switch types.CategoryOf(label) {
	case "Contact", "Corporate":
		return "medium"
	case "Vehicle", "":
		return "low"
	default:
		return "high"
	}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func sortFindings(findings []engine.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Start < findings[j].Start
		}
		return findings[i].Path < findings[j].Path
	})
}

// PrintText writes one line per finding followed by a summary footer.
func PrintText(w io.Writer, findings []engine.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
	} else {
		width := lo.Max(lo.Map(findings, func(f engine.Finding, _ int) int { return len(f.Label) }))
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			sev := colorSeverity(Severity(f.Label), opts.NoColor)
			fmt.Fprintf(w, "%s %-*s %s:%d:%d  %s  %.2f\n", sev, width, f.Label, f.Path, f.Line, f.Column, display(f.Text, opts), f.Confidence)
		}
	}
	printFooter(w, lo.Map(findings, func(f engine.Finding, _ int) types.Entity { return f.Entity }), opts)
}

// PrintTable renders findings as a bordered table.
func PrintTable(w io.Writer, findings []engine.Finding, opts PrintOptions) error {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "LABEL", "LOCATION", "VALUE", "CONFIDENCE")
		for _, f := range findings {
			row := []string{
				Severity(f.Label),
				f.Label,
				fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column),
				display(f.Text, opts),
				fmt.Sprintf("%.2f", f.Confidence),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	printFooter(w, lo.Map(findings, func(f engine.Finding, _ int) types.Entity { return f.Entity }), opts)
	return nil
}

// PrintEntities writes entities found in a single text, with byte offsets.
func PrintEntities(w io.Writer, entities []types.Entity, opts PrintOptions) {
	if len(entities) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
		return
	}
	width := lo.Max(lo.Map(entities, func(e types.Entity, _ int) int { return len(e.Label) }))
	for _, e := range entities {
		sev := colorSeverity(Severity(e.Label), opts.NoColor)
		fmt.Fprintf(w, "%s %-*s [%d:%d]  %s  %.2f\n", sev, width, e.Label, e.Start, e.End, display(e.Text, opts), e.Confidence)
	}
}

// PrintStats writes per-label counts and mean confidences.
func PrintStats(w io.Writer, st detectors.Stats, opts PrintOptions) {
	fmt.Fprintf(w, "Entities: %d (avg confidence %.2f)\n", st.Total, st.AvgConfidence)
	labels := lo.Keys(st.ByType)
	sort.Strings(labels)
	for _, l := range labels {
		s := st.ByType[l]
		fmt.Fprintf(w, "  %-18s %4d  %.2f\n", l, s.Count, s.AvgConfidence)
	}
	if len(st.ByLanguage) > 0 {
		langs := lo.Keys(st.ByLanguage)
		sort.Strings(langs)
		parts := lo.Map(langs, func(l string, _ int) string { return fmt.Sprintf("%s=%d", lo.Ternary(l == "", "?", l), st.ByLanguage[l]) })
		fmt.Fprintln(w, dim("Languages: "+strings.Join(parts, " "), opts.NoColor))
	}
}

// PrintAnonymizeSummary writes the counters of a batch run and its errors.
func PrintAnonymizeSummary(w io.Writer, res anonymize.Result, opts PrintOptions) {
	fmt.Fprintf(w, "Records: %d anonymized of %d\n", res.AnonymizedCount, res.OriginalCount)
	fmt.Fprintf(w, "Fields processed: %d\n", res.FieldsProcessed)
	if res.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", res.Duration.Seconds())
	}
	for _, e := range res.Errors {
		fmt.Fprintln(w, colorSeverity("error", opts.NoColor)+" "+e)
	}
}

func printFooter(w io.Writer, entities []types.Entity, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	counts := lo.CountValuesBy(entities, func(e types.Entity) string { return Severity(e.Label) })
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(entities), counts["high"], counts["medium"], counts["low"])
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

func display(s string, opts PrintOptions) string {
	if opts.ShowValues {
		return s
	}
	return maskValue(s)
}

func maskValue(s string) string {
	r := []rune(s)
	if len(r) <= 6 {
		return "******"
	}
	return string(r[:2]) + "…" + string(r[len(r)-2:])
}

func colorSeverity(sev string, noColor bool) string {
	label := fmt.Sprintf("%-6s", sev)
	if noColor {
		return label
	}
	switch sev {
	case "high", "error":
		return highStyle.Render(label)
	case "medium":
		return medStyle.Render(label)
	default:
		return lowStyle.Render(label)
	}
}

func dim(s string, noColor bool) string {
	if noColor {
		return s
	}
	return dimStyle.Render(s)
}

// PrintCategories renders the entity catalog as a table, one row per category.
func PrintCategories(w io.Writer, cats []types.Category) error {
	table := tablewriter.NewWriter(w)
	table.Header("CATEGORY", "COUNT", "LABELS")
	for _, c := range cats {
		if err := table.Append([]string{c.Name, fmt.Sprint(len(c.Labels)), strings.Join(c.Labels, ", ")}); err != nil {
			return err
		}
	}
	return table.Render()
}
