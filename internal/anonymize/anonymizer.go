// Package anonymize transforms structured records according to per-table,
// per-field configuration.
//
// An Anonymizer keeps a consistency cache keyed by (table, field, value) so
// the same original always maps to the same replacement for the lifetime of
// the instance, regardless of record order.
package anonymize

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/redactyl/piiguard/internal/vault"
)

// Record is one row: column name to value.
type Record = map[string]any

// Result summarizes a batch.
type Result struct {
	OriginalCount   int            `json:"original_count"`
	AnonymizedCount int            `json:"anonymized_count"`
	FieldsProcessed map[string]int `json:"fields_processed"`
	Duration        time.Duration  `json:"duration_ns"`
	Errors          []string       `json:"errors,omitempty"`
}

type cacheKey struct {
	table, field, value string
}

// Anonymizer applies a Config to records. It is safe for concurrent use;
// calls are serialized so the consistency cache stays coherent.
type Anonymizer struct {
	cfg        Config
	strategies map[string]Strategy
	sc         *StrategyContext
	log        *zap.Logger

	mu    sync.Mutex
	cache map[cacheKey]any
}

// Option configures an Anonymizer.
type Option func(*Anonymizer)

// WithLogger sets the logger. Only counts and names are logged.
func WithLogger(l *zap.Logger) Option {
	return func(a *Anonymizer) {
		if l != nil {
			a.log = l
		}
	}
}

// WithStrategy registers or replaces the strategy for a field type.
func WithStrategy(fieldType string, s Strategy) Option {
	return func(a *Anonymizer) { a.strategies[fieldType] = s }
}

// New returns an Anonymizer for cfg. A vault is created when cfg.UseTokenVault
// is set.
func New(cfg Config, opts ...Option) *Anonymizer {
	a := &Anonymizer{
		cfg:        cfg,
		strategies: defaultStrategies(),
		log:        zap.NewNop(),
		cache:      make(map[cacheKey]any),
	}
	for _, o := range opts {
		o(a)
	}
	var v *vault.Vault
	if cfg.UseTokenVault {
		v = vault.New(vault.WithKey(cfg.VaultEncryptionKey), vault.WithLogger(a.log))
	}
	a.sc = newStrategyContext(v, cfg.PreserveFormat, cfg.Seed)
	return a
}

// Config returns the job configuration.
func (a *Anonymizer) Config() Config { return a.cfg }

// Vault returns the token vault, or nil when the job does not use one.
func (a *Anonymizer) Vault() *vault.Vault { return a.sc.Vault }

// resolve finds the config for table.field. A field without its own config
// that references another table through ForeignKeys borrows the referenced
// column's config and cache namespace.
func (a *Anonymizer) resolve(t TableConfig, field string) (FieldConfig, cacheKey, bool) {
	if fc, ok := t.Field(field); ok {
		return fc, cacheKey{table: t.TableName, field: field}, true
	}
	ref, ok := t.ForeignKeys[field]
	if !ok {
		return FieldConfig{}, cacheKey{}, false
	}
	refTable, refField, ok := strings.Cut(ref, ".")
	if !ok {
		return FieldConfig{}, cacheKey{}, false
	}
	rt, ok := a.cfg.Table(refTable)
	if !ok {
		return FieldConfig{}, cacheKey{}, false
	}
	fc, ok := rt.Field(refField)
	if !ok {
		return FieldConfig{}, cacheKey{}, false
	}
	return fc, cacheKey{table: refTable, field: refField}, true
}

// AnonymizeRecord returns an anonymized copy of record. Unknown tables and
// unconfigured fields pass through unchanged.
func (a *Anonymizer) AnonymizeRecord(record Record, table string) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.anonymizeRecord(record, table)
}

func (a *Anonymizer) anonymizeRecord(record Record, table string) (Record, error) {
	t, ok := a.cfg.Table(table)
	if !ok {
		return record, nil
	}
	out := make(Record, len(record))
	fields := lo.Keys(record)
	sort.Strings(fields)
	for _, field := range fields {
		value := record[field]
		fc, ns, ok := a.resolve(t, field)
		if !ok {
			out[field] = value
			continue
		}
		if value == nil {
			// nulls are never transformed or cached
			out[field] = nil
			continue
		}
		ns.value = stringify(value)
		if cached, hit := a.cache[ns]; hit {
			out[field] = cached
			continue
		}
		anon, err := a.transform(value, fc)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		a.cache[ns] = anon
		out[field] = anon
	}
	return out, nil
}

func (a *Anonymizer) transform(value any, fc FieldConfig) (any, error) {
	switch fc.Method {
	case Preserve, Shuffle:
		return value, nil
	case Null:
		return nil, nil
	case Tokenize:
		return tokenFor(stringify(value), lo.Ternary(fc.FieldType == "", TypeText, fc.FieldType), a.sc), nil
	}
	s, ok := a.strategies[fc.FieldType]
	if !ok {
		s = a.strategies[TypeText]
	}
	return s.Anonymize(value, fc, a.sc)
}

// AnonymizeRecords anonymizes a batch. A failing record is returned unchanged
// and reported in Result.Errors as "Record <i>: <err>"; the batch continues.
// Shuffle fields are permuted across the successfully anonymized records.
func (a *Anonymizer) AnonymizeRecords(records []Record, table string) ([]Record, Result) {
	start := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()

	res := Result{OriginalCount: len(records), FieldsProcessed: map[string]int{}}
	out := make([]Record, len(records))
	var done []int
	for i, rec := range records {
		anon, err := a.anonymizeRecord(rec, table)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Record %d: %v", i, err))
			out[i] = rec
			continue
		}
		out[i] = anon
		done = append(done, i)
		for field := range anon {
			res.FieldsProcessed[field]++
		}
	}
	res.AnonymizedCount = len(done)
	a.shuffle(out, done, table)
	res.Duration = time.Since(start)

	if ce := a.log.Check(zap.DebugLevel, "anonymized batch"); ce != nil {
		ce.Write(
			zap.String("table", table),
			zap.Int("records", res.OriginalCount),
			zap.Int("anonymized", res.AnonymizedCount),
			zap.Int("errors", len(res.Errors)),
			zap.Duration("duration", res.Duration),
		)
	}
	return out, res
}

func (a *Anonymizer) shuffle(records []Record, idx []int, table string) {
	t, ok := a.cfg.Table(table)
	if !ok || len(idx) < 2 {
		return
	}
	fields := lo.Filter(t.Fields, func(f FieldConfig, _ int) bool { return f.Method == Shuffle })
	if len(fields) == 0 {
		return
	}
	var r *rand.Rand
	if a.cfg.Seed != nil {
		s := uint64(*a.cfg.Seed)
		r = rand.New(rand.NewPCG(s, s^0x94d049bb133111eb))
	} else {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for _, f := range fields {
		holders := lo.Filter(idx, func(i int, _ int) bool {
			_, present := records[i][f.FieldName]
			return present
		})
		vals := lo.Map(holders, func(i int, _ int) any { return records[i][f.FieldName] })
		r.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
		for k, i := range holders {
			records[i][f.FieldName] = vals[k]
		}
	}
}

// AnonymizeText applies the text strategy with method to a free-form string.
func (a *Anonymizer) AnonymizeText(text string, method Method) string {
	out, err := a.transform(text, FieldConfig{FieldName: TypeText, FieldType: TypeText, Method: method})
	if err != nil || out == nil {
		return ""
	}
	return stringify(out)
}

// ExportVault returns token to original across all field types, or nil when
// the job has no vault.
func (a *Anonymizer) ExportVault() map[string]string {
	if a.sc.Vault == nil {
		return nil
	}
	return a.sc.Vault.Flatten()
}
