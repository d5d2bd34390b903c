package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redactyl/piiguard/internal/fake"
	"github.com/redactyl/piiguard/internal/vault"
)

// Strategy anonymizes a single value of one field type.
type Strategy interface {
	Anonymize(value any, fc FieldConfig, sc *StrategyContext) (any, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(value any, fc FieldConfig, sc *StrategyContext) (any, error)

// Anonymize calls f.
func (f StrategyFunc) Anonymize(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	return f(value, fc, sc)
}

// StrategyContext carries job-wide state shared by strategies.
type StrategyContext struct {
	// Vault is nil when the job does not use one.
	Vault          *vault.Vault
	PreserveFormat bool

	seed *int64
	mu   sync.Mutex
	gens map[string]*fake.Generator
}

func newStrategyContext(v *vault.Vault, preserveFormat bool, seed *int64) *StrategyContext {
	return &StrategyContext{Vault: v, PreserveFormat: preserveFormat, seed: seed, gens: map[string]*fake.Generator{}}
}

// Generator returns the fake data generator for locale, creating it on first
// use. An empty locale selects en_US.
func (sc *StrategyContext) Generator(locale string) *fake.Generator {
	if locale == "" {
		locale = "en_US"
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if g, ok := sc.gens[locale]; ok {
		return g
	}
	opts := []fake.Option{fake.WithLocale(locale)}
	if sc.seed != nil {
		opts = append(opts, fake.WithSeed(*sc.seed))
	}
	g := fake.New(opts...)
	sc.gens[locale] = g
	return g
}

func defaultStrategies() map[string]Strategy {
	return map[string]Strategy{
		TypeEmail:      StrategyFunc(anonymizeEmail),
		TypePhone:      StrategyFunc(anonymizePhone),
		TypeName:       StrategyFunc(anonymizeName),
		TypeSSN:        StrategyFunc(anonymizeSSN),
		TypeDate:       StrategyFunc(anonymizeDate),
		TypeNumeric:    StrategyFunc(anonymizeNumeric),
		TypeText:       StrategyFunc(anonymizeText),
		TypeAddress:    StrategyFunc(anonymizeAddress),
		TypeCreditCard: StrategyFunc(anonymizeCreditCard),
	}
}

// stringify renders a value the way it is hashed, cached and tokenized.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func hexDigest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// tokenFor returns a vault token, or a deterministic digest token when the job
// has no vault.
func tokenFor(s, fieldType string, sc *StrategyContext) string {
	if sc != nil && sc.Vault != nil {
		return sc.Vault.Tokenize(s, fieldType)
	}
	return "TOK_" + strings.ToUpper(fieldType) + "_" + hexDigest(s)[:12]
}
