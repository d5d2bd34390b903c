// Package records reads and writes the tabular data fed to the anonymizer.
// Input may be a JSON array (or single object), JSON lines, or YAML; output
// may be JSON, JSON lines, CSV, or SQL INSERT statements.
package records

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	yaml "gopkg.in/yaml.v3"

	"github.com/redactyl/piiguard/internal/anonymize"
)

// Formats.
const (
	JSON  = "json"
	JSONL = "jsonl"
	YAML  = "yaml"
	CSV   = "csv"
	SQL   = "sql"
)

// FormatFromPath guesses a format from a file extension. Unknown extensions
// return "".
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".jsonl", ".ndjson":
		return JSONL
	case ".yml", ".yaml":
		return YAML
	case ".csv":
		return CSV
	case ".sql":
		return SQL
	}
	return ""
}

// Read decodes records from r. An empty format sniffs the input: an array or
// a single object is JSON, several objects are JSON lines, anything else YAML.
func Read(r io.Reader, format string) ([]anonymize.Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = sniff(b)
	}
	switch format {
	case JSON:
		return readJSON(b)
	case JSONL:
		return readJSONL(b)
	case YAML:
		return readYAML(b)
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

func sniff(b []byte) string {
	t := bytes.TrimSpace(b)
	switch {
	case len(t) == 0:
		return JSON
	case t[0] == '[':
		return JSON
	case t[0] == '{':
		dec := json.NewDecoder(bytes.NewReader(t))
		var first json.RawMessage
		if dec.Decode(&first) == nil && dec.More() {
			return JSONL
		}
		return JSON
	}
	return YAML
}

func readJSON(b []byte) ([]anonymize.Record, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	switch t := v.(type) {
	case []any:
		out := make([]anonymize.Record, 0, len(t))
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}
			out = append(out, normalize(m))
		}
		return out, nil
	case map[string]any:
		return []anonymize.Record{normalize(t)}, nil
	}
	return nil, fmt.Errorf("expected an array of objects")
}

func readJSONL(b []byte) ([]anonymize.Record, error) {
	var out []anonymize.Record
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		t := bytes.TrimSpace(sc.Bytes())
		if len(t) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(t))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, normalize(m))
	}
	return out, sc.Err()
}

func readYAML(b []byte) ([]anonymize.Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	n := root.Content[0]
	switch n.Kind {
	case yaml.SequenceNode:
		var list []map[string]any
		if err := n.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return lo.Map(list, func(m map[string]any, _ int) anonymize.Record { return m }), nil
	case yaml.MappingNode:
		var m map[string]any
		if err := n.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return []anonymize.Record{m}, nil
	}
	return nil, fmt.Errorf("line %d: expected a list of mappings", n.Line)
}

// normalize turns json.Number into int64 when integral, float64 otherwise.
func normalize(m map[string]any) anonymize.Record {
	for k, v := range m {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				m[k] = i
			} else if f, err := n.Float64(); err == nil {
				m[k] = f
			}
		}
	}
	return m
}

// Columns returns the union of keys across records, sorted.
func Columns(recs []anonymize.Record) []string {
	cols := lo.Uniq(lo.Flatten(lo.Map(recs, func(r anonymize.Record, _ int) []string { return lo.Keys(r) })))
	sort.Strings(cols)
	return cols
}

// Write encodes recs in format. table names the target of SQL inserts.
func Write(w io.Writer, recs []anonymize.Record, format, table string) error {
	switch format {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if recs == nil {
			recs = []anonymize.Record{}
		}
		return enc.Encode(recs)
	case JSONL:
		enc := json.NewEncoder(w)
		for _, r := range recs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, recs)
	case SQL:
		return writeSQL(w, recs, table)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func writeCSV(w io.Writer, recs []anonymize.Record) error {
	cols := Columns(recs)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, r := range recs {
		row := lo.Map(cols, func(c string, _ int) string { return cell(r[c]) })
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSQL(w io.Writer, recs []anonymize.Record, table string) error {
	if table == "" {
		table = "records"
	}
	cols := Columns(recs)
	quoted := strings.Join(lo.Map(cols, func(c string, _ int) string { return quoteIdent(c) }), ", ")
	for _, r := range recs {
		vals := lo.Map(cols, func(c string, _ int) string { return sqlLiteral(r[c]) })
		if _, err := fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n", quoteIdent(table), quoted, strings.Join(vals, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case map[string]any, []any:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

func sqlLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return lo.Ternary(t, "TRUE", "FALSE")
	case int, int32, int64, uint, uint64, float32, float64:
		return cell(t)
	default:
		return "'" + strings.ReplaceAll(cell(t), "'", "''") + "'"
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
