// Package redact rewrites text and files by replacing byte spans or regex
// matches. Span replacements are applied from the highest offset down so
// earlier offsets stay valid during the rewrite.
package redact

import (
	"os"
	"regexp"
	"sort"
	"strings"
)

// Span replaces text[Start:End] with Replace.
type Span struct {
	Start   int
	End     int
	Replace string
}

// Replacement rewrites every match of Pattern with Replace.
type Replacement struct {
	Pattern *regexp.Regexp
	Replace string
}

// Spans applies non-overlapping spans to text. Spans outside the text are
// ignored.
func Spans(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	sorted := append([]Span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })
	out := text
	for _, s := range sorted {
		if s.Start < 0 || s.End > len(out) || s.Start > s.End {
			continue
		}
		out = out[:s.Start] + s.Replace + out[s.End:]
	}
	return out
}

// Mask returns the placeholder used for an entity label: [LABEL:cccc].
func Mask(label, maskChar string) string {
	if maskChar == "" {
		maskChar = "*"
	}
	return "[" + label + ":" + strings.Repeat(maskChar, 4) + "]"
}

func applyAll(s string, reps []Replacement) string {
	for _, r := range reps {
		s = r.Pattern.ReplaceAllString(s, r.Replace)
	}
	return s
}

// WouldChange reports whether Apply would modify the file at path.
func WouldChange(path string, reps []Replacement) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return applyAll(string(b), reps) != string(b), nil
}

// Apply rewrites the file at path with every replacement. It reports whether
// the contents changed.
func Apply(path string, reps []Replacement) (bool, error) {
	return Rewrite(path, func(s string) string { return applyAll(s, reps) })
}

// Rewrite replaces the contents of path with fn(contents), keeping the file
// mode. The file is left untouched when fn returns the input unchanged.
func Rewrite(path string, fn func(string) string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out := fn(string(b))
	if out == string(b) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(out), st.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
