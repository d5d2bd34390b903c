package anonymize

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Method selects how a field value is transformed.
type Method string

const (
	Redact     Method = "redact"
	Mask       Method = "mask"
	Hash       Method = "hash"
	Tokenize   Method = "tokenize"
	Fake       Method = "fake"
	Generalize Method = "generalize"
	Shuffle    Method = "shuffle"
	Null       Method = "null"
	Preserve   Method = "preserve"
)

// Methods lists every method in declaration order.
var Methods = []Method{Redact, Mask, Hash, Tokenize, Fake, Generalize, Shuffle, Null, Preserve}

// Field types with a dedicated strategy. Any other type is treated as text.
const (
	TypeEmail      = "email"
	TypePhone      = "phone"
	TypeName       = "name"
	TypeSSN        = "ssn"
	TypeDate       = "date"
	TypeNumeric    = "numeric"
	TypeText       = "text"
	TypeAddress    = "address"
	TypeCreditCard = "credit_card"
)

// Output formats understood by the records writer.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatSQL  = "sql"
)

// FieldConfig describes how one field of a table is anonymized. Params carry
// method-specific settings such as show_last, mask_char, ranges, precision,
// noise_percent and locale.
type FieldConfig struct {
	FieldName string         `yaml:"field_name" json:"field_name"`
	FieldType string         `yaml:"field_type" json:"field_type"`
	Method    Method         `yaml:"method" json:"method"`
	Params    map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// TableConfig groups the field configs of one table. ForeignKeys maps a field
// to "table.column"; references are advisory.
type TableConfig struct {
	TableName   string            `yaml:"table_name" json:"table_name"`
	Fields      []FieldConfig     `yaml:"fields" json:"fields"`
	PrimaryKey  string            `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	ForeignKeys map[string]string `yaml:"foreign_keys,omitempty" json:"foreign_keys,omitempty"`
}

// Config is one anonymization job. It is read-only once handed to an Anonymizer.
type Config struct {
	ConfigID           string        `yaml:"config_id" json:"config_id"`
	Name               string        `yaml:"name" json:"name"`
	Tables             []TableConfig `yaml:"tables" json:"tables"`
	Seed               *int64        `yaml:"seed,omitempty" json:"seed,omitempty"`
	PreserveNulls      bool          `yaml:"preserve_nulls" json:"preserve_nulls"`
	PreserveFormat     bool          `yaml:"preserve_format" json:"preserve_format"`
	UseTokenVault      bool          `yaml:"use_token_vault" json:"use_token_vault"`
	VaultEncryptionKey string        `yaml:"vault_encryption_key,omitempty" json:"vault_encryption_key,omitempty"`
	OutputFormat       string        `yaml:"output_format" json:"output_format"`
	CreatedAt          time.Time     `yaml:"created_at" json:"created_at"`
}

// NewConfig returns a job with defaults applied: a fresh id, null and format
// preservation on, JSON output, created now.
func NewConfig(name string, tables ...TableConfig) Config {
	return Config{
		ConfigID:       uuid.NewString(),
		Name:           name,
		Tables:         tables,
		PreserveNulls:  true,
		PreserveFormat: true,
		OutputFormat:   FormatJSON,
		CreatedAt:      time.Now().UTC(),
	}
}

// Table returns the config for name.
func (c Config) Table(name string) (TableConfig, bool) {
	return lo.Find(c.Tables, func(t TableConfig) bool { return t.TableName == name })
}

// TableNames lists configured tables in order.
func (c Config) TableNames() []string {
	return lo.Map(c.Tables, func(t TableConfig, _ int) string { return t.TableName })
}

// Field returns the config for field.
func (t TableConfig) Field(name string) (FieldConfig, bool) {
	return lo.Find(t.Fields, func(f FieldConfig) bool { return f.FieldName == name })
}

// Key returns the primary key column, "id" when unset.
func (t TableConfig) Key() string {
	return lo.Ternary(t.PrimaryKey == "", "id", t.PrimaryKey)
}

// Validate reports unknown methods, duplicate tables or fields, and unknown
// output formats.
func (c Config) Validate() error {
	var errs []error
	if c.OutputFormat != "" && !lo.Contains([]string{FormatJSON, FormatCSV, FormatSQL}, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output_format %q: want json, csv or sql", c.OutputFormat))
	}
	for _, dup := range lo.FindDuplicates(c.TableNames()) {
		errs = append(errs, fmt.Errorf("table %q configured more than once", dup))
	}
	for _, t := range c.Tables {
		if t.TableName == "" {
			errs = append(errs, errors.New("table without table_name"))
		}
		names := lo.Map(t.Fields, func(f FieldConfig, _ int) string { return f.FieldName })
		for _, dup := range lo.FindDuplicates(names) {
			errs = append(errs, fmt.Errorf("%s.%s configured more than once", t.TableName, dup))
		}
		for _, f := range t.Fields {
			if !lo.Contains(Methods, f.Method) {
				errs = append(errs, fmt.Errorf("%s.%s: unknown method %q", t.TableName, f.FieldName, f.Method))
			}
		}
	}
	return errors.Join(errs...)
}

func stringParam(params map[string]any, key, def string) string {
	if s, ok := params[key].(string); ok && s != "" {
		return s
	}
	return def
}

func intParam(params map[string]any, key string, def int) int {
	if f, ok := toFloat(params[key]); ok {
		return int(f)
	}
	return def
}

func floatParam(params map[string]any, key string, def float64) float64 {
	if f, ok := toFloat(params[key]); ok {
		return f
	}
	return def
}

// rangesParam accepts [][]int, [][]float64 or the []any of []any produced by
// YAML and JSON decoders. Malformed entries are skipped.
func rangesParam(params map[string]any, key string, def [][2]float64) [][2]float64 {
	raw, ok := params[key]
	if !ok {
		return def
	}
	var items []any
	switch v := raw.(type) {
	case [][2]float64:
		return v
	case [][]int:
		items = lo.Map(v, func(r []int, _ int) any { return r })
	case [][]float64:
		items = lo.Map(v, func(r []float64, _ int) any { return r })
	case []any:
		items = v
	default:
		return def
	}
	out := make([][2]float64, 0, len(items))
	for _, it := range items {
		var pair []any
		switch p := it.(type) {
		case []any:
			pair = p
		case []int:
			pair = lo.Map(p, func(n int, _ int) any { return n })
		case []float64:
			pair = lo.Map(p, func(n float64, _ int) any { return n })
		}
		if len(pair) != 2 {
			continue
		}
		low, okLow := toFloat(pair[0])
		high, okHigh := toFloat(pair[1])
		if okLow && okHigh {
			out = append(out, [2]float64{low, high})
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
