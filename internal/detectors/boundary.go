package detectors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// wordRule is a compiled expression whose leading and trailing `\b` were
// lifted out. RE2 only knows ASCII word characters, which puts a boundary
// between "Ren" and "é" and none after "René", so the edges are checked
// against Unicode letters, digits and '_' by findWords instead.
type wordRule struct {
	re          *regexp.Regexp
	left, right bool
}

func compileWord(expr, prefix string) wordRule {
	var r wordRule
	if s, ok := strings.CutPrefix(expr, `\b`); ok {
		expr, r.left = s, true
	}
	if s, ok := strings.CutSuffix(expr, `\b`); ok {
		expr, r.right = s, true
	}
	r.re = regexp.MustCompile(prefix + expr)
	return r
}

// findWords returns the match spans of r in text, skipping matches that start
// or end inside a word. A match that runs into a word is cut back to the
// longest shorter match ending on a word edge, if any.
func findWords(r wordRule, text string) [][]int {
	// A rule with a left edge cannot match inside the word it was rejected in.
	next := func(i int) int {
		j := i + runeLen(text, i)
		if r.left {
			for j < len(text) && isWordRune(firstRune(text[j:])) {
				j += runeLen(text, j)
			}
		}
		return j
	}

	var out [][]int
	for pos := 0; pos < len(text); {
		loc := r.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if r.left && isWordRune(lastRune(text[:start])) {
			pos = next(start)
			continue
		}
		if r.right && isWordRune(firstRune(text[end:])) {
			if end = shorterMatch(r.re, text, start, end); end < 0 {
				pos = next(start)
				continue
			}
		}
		out = append(out, []int{start, end})
		if end == start {
			end += runeLen(text, end)
		}
		pos = end
	}
	return out
}

func shorterMatch(re *regexp.Regexp, text string, start, end int) int {
	for k := end; k > start; {
		_, size := utf8.DecodeLastRuneInString(text[start:k])
		k -= size
		if k == start || isWordRune(firstRune(text[k:])) {
			continue
		}
		loc := re.FindStringIndex(text[start:k])
		if loc != nil && loc[0] == 0 && loc[1] > 0 && !isWordRune(firstRune(text[start+loc[1]:])) {
			return start + loc[1]
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func runeLen(text string, i int) int {
	if i >= len(text) {
		return 1
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return size
}
