package detectors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/redactyl/piiguard/internal/types"
)

const (
	maxConfidence     = 0.99
	acceptPattern     = 0.75
	acceptName        = 0.80
	addressConfidence = 0.95
)

// Detector finds PII entities in text. Its rule tables are built once by New
// and only read afterwards, so a Detector is safe for concurrent use.
type Detector struct {
	patterns      []pattern
	names         []wordRule
	addresses     []wordRule
	validators    bool
	caseSensitive bool
	minConf       float64
	enabled       map[string]bool
	disabled      map[string]bool
	log           *zap.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithMinConfidence drops entities below c from Detect results.
func WithMinConfidence(c float64) Option {
	return func(d *Detector) { d.minConf = c }
}

// WithLabels restricts scanning to enable (all labels when empty) minus disable.
func WithLabels(enable, disable []string) Option {
	return func(d *Detector) {
		if len(enable) > 0 {
			d.enabled = lo.Associate(enable, func(s string) (string, bool) { return strings.ToUpper(s), true })
		}
		if len(disable) > 0 {
			d.disabled = lo.Associate(disable, func(s string) (string, bool) { return strings.ToUpper(s), true })
		}
	}
}

// WithValidators toggles the checksum and format validators.
func WithValidators(on bool) Option {
	return func(d *Detector) { d.validators = on }
}

// WithCaseSensitive compiles the entity rules without case folding. Letter
// classes such as LICENSE_PLATE then only match upper-case input, which leaves
// more room for the name and address scans.
func WithCaseSensitive(on bool) Option {
	return func(d *Detector) { d.caseSensitive = on }
}

// WithLogger sets the logger used for debug output. Matched text is never logged.
func WithLogger(l *zap.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.log = l
		}
	}
}

// New builds a Detector with the built-in rule tables.
func New(opts ...Option) *Detector {
	d := &Detector{
		validators: true,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	d.patterns = compilePatterns(patternSpecs, !d.caseSensitive)
	d.names = compileAll(nameExprs, "")
	d.addresses = compileAll(addressExprs, `(?i)`)
	return d
}

// IDs returns every label the detector can emit, in scan order.
func IDs() []string {
	ids := lo.Map(patternSpecs, func(s patternSpec, _ int) string { return s.label })
	return append(ids, types.Name, types.Address)
}

// Fingerprint summarizes the settings that affect Detect output. Results
// computed under one fingerprint can be reused while it stays the same.
func (d *Detector) Fingerprint() string {
	enabled, disabled := lo.Keys(d.enabled), lo.Keys(d.disabled)
	sort.Strings(enabled)
	sort.Strings(disabled)
	return fmt.Sprintf("v1|%t|%t|%g|%s|%s", d.validators, d.caseSensitive, d.minConf,
		strings.Join(enabled, ","), strings.Join(disabled, ","))
}

func (d *Detector) wants(label string) bool {
	if d.disabled[label] {
		return false
	}
	return d.enabled == nil || d.enabled[label]
}

// Detect returns the entities found in text sorted by start offset. Spans of
// the returned entities never overlap. Empty input yields no entities.
func (d *Detector) Detect(text string) []types.Entity {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lang := DetectLanguage(text)

	entities := d.scanPatterns(text, lang)
	entities = d.scanNames(text, lang, entities)
	entities = d.scanAddresses(text, lang, entities)
	candidates := len(entities)

	entities = resolveOverlaps(entities)
	entities = filterEntities(entities)
	if d.minConf > 0 {
		entities = lo.Filter(entities, func(e types.Entity, _ int) bool { return e.Confidence >= d.minConf })
	}
	sortByStart(entities)

	if ce := d.log.Check(zap.DebugLevel, "detect"); ce != nil {
		ce.Write(
			zap.Int("bytes", len(text)),
			zap.String("language", lang),
			zap.Int("candidates", candidates),
			zap.Int("entities", len(entities)),
		)
	}
	return entities
}

func (d *Detector) scanPatterns(text, lang string) []types.Entity {
	var out []types.Entity
	for _, p := range d.patterns {
		if !d.wants(p.label) {
			continue
		}
		for _, loc := range findWords(p.rule, text) {
			start, end := loc[0], loc[1]
			conf := p.base*p.weight + contextScore(text, start, end, p.keywords)*0.1
			e := types.Entity{
				Text:       text[start:end],
				Label:      p.label,
				Start:      start,
				End:        end,
				Confidence: clamp(conf),
				Context:    window(text, start, end, contextRadius),
				Language:   lang,
			}
			if d.validators {
				e = applyValidator(e)
			}
			if e.Confidence <= acceptPattern {
				continue
			}
			out = append(out, e.WithConfidence(clamp(e.Confidence)))
		}
	}
	return out
}

func (d *Detector) scanNames(text, lang string, found []types.Entity) []types.Entity {
	if !d.wants(types.Name) {
		return found
	}
	for _, re := range d.names {
		for _, loc := range findWords(re, text) {
			start, end := loc[0], loc[1]
			if overlapsAny(start, end, found) {
				continue
			}
			conf := nameConfidence(text, start, end)
			if conf <= acceptName {
				continue
			}
			found = append(found, types.Entity{
				Text:       text[start:end],
				Label:      types.Name,
				Start:      start,
				End:        end,
				Confidence: clamp(conf),
				Context:    window(text, start, end, contextRadius),
				Language:   lang,
			})
		}
	}
	return found
}

func (d *Detector) scanAddresses(text, lang string, found []types.Entity) []types.Entity {
	if !d.wants(types.Address) {
		return found
	}
	for _, re := range d.addresses {
		for _, loc := range findWords(re, text) {
			start, end := loc[0], loc[1]
			if overlapsAny(start, end, found) {
				continue
			}
			found = append(found, types.Entity{
				Text:       text[start:end],
				Label:      types.Address,
				Start:      start,
				End:        end,
				Confidence: addressConfidence,
				Context:    window(text, start, end, contextRadius),
				Language:   lang,
			})
		}
	}
	return found
}

func overlapsAny(start, end int, entities []types.Entity) bool {
	return lo.ContainsBy(entities, func(e types.Entity) bool {
		return start < e.End && e.Start < end
	})
}
