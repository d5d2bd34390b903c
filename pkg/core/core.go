package core

import (
	"context"
	"errors"
	"sync"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/fake"
	"github.com/redactyl/piiguard/internal/types"
	"github.com/redactyl/piiguard/internal/vault"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Entity          = types.Entity
	Detector        = detectors.Detector
	DetectorOption  = detectors.Option
	Stats           = detectors.Stats
	Anonymizer      = anonymize.Anonymizer
	AnonymizeConfig = anonymize.Config
	TableConfig     = anonymize.TableConfig
	FieldConfig     = anonymize.FieldConfig
	Method          = anonymize.Method
	Record          = anonymize.Record
	BatchResult     = anonymize.Result
	Vault           = vault.Vault
	Generator       = fake.Generator
	ScanConfig      = engine.Config
	Finding         = engine.Finding
	ScanResult      = engine.Result
)

// Detector options.
var (
	WithMinConfidence = detectors.WithMinConfidence
	WithLabels        = detectors.WithLabels
	WithValidators    = detectors.WithValidators
	WithCaseSensitive = detectors.WithCaseSensitive
)

// ErrNotInitialized is returned by the default-detector helpers before Init.
var ErrNotInitialized = errors.New("core: default detector not initialized")

var (
	mu       sync.RWMutex
	fallback *Detector
)

// NewDetector builds a detector. Detectors are safe for concurrent use.
func NewDetector(opts ...DetectorOption) *Detector { return detectors.New(opts...) }

// NewAnonymizer builds an anonymizer for a job after validating it.
func NewAnonymizer(cfg AnonymizeConfig) (*Anonymizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return anonymize.New(cfg), nil
}

// NewVault returns an empty token vault sealed with key, or a generated key
// when key is empty.
func NewVault(key string) *Vault { return vault.New(vault.WithKey(key)) }

// NewGenerator returns a fake data generator; a nil seed draws a random one.
func NewGenerator(locale string, seed *int64) *Generator {
	opts := []fake.Option{fake.WithLocale(locale)}
	if seed != nil {
		opts = append(opts, fake.WithSeed(*seed))
	}
	return fake.New(opts...)
}

// Init installs the process-wide default detector. Calling it again replaces
// the detector.
func Init(opts ...DetectorOption) {
	d := detectors.New(opts...)
	mu.Lock()
	fallback = d
	mu.Unlock()
}

// Shutdown releases the default detector.
func Shutdown() {
	mu.Lock()
	fallback = nil
	mu.Unlock()
}

// Default returns the detector installed by Init.
func Default() (*Detector, error) {
	mu.RLock()
	defer mu.RUnlock()
	if fallback == nil {
		return nil, ErrNotInitialized
	}
	return fallback, nil
}

// Detect runs the default detector over text.
func Detect(text string) ([]Entity, error) {
	d, err := Default()
	if err != nil {
		return nil, err
	}
	return d.Detect(text), nil
}

// Redact masks every entity the default detector finds in text.
func Redact(text, maskChar string) (string, error) {
	d, err := Default()
	if err != nil {
		return "", err
	}
	out, _ := d.Redact(text, maskChar)
	return out, nil
}

// Scan walks cfg.Root with det. A nil det uses the default detector.
func Scan(ctx context.Context, cfg ScanConfig, det *Detector) (ScanResult, error) {
	if det == nil {
		var err error
		if det, err = Default(); err != nil {
			return ScanResult{}, err
		}
	}
	return engine.Scan(ctx, cfg, det)
}

// Statistics summarizes entities.
func Statistics(entities []Entity) Stats { return detectors.Statistics(entities) }

// EntityTypes returns every canonical label in catalog order.
func EntityTypes() []string { return types.ListEntityTypes() }
