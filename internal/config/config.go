package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/redactyl/piiguard/internal/anonymize"
)

// ErrNoConfig is returned when no local or global config file exists.
var ErrNoConfig = errors.New("no config")

var localNames = []string{".piiguard.yml", ".piiguard.yaml", "piiguard.yml", "piiguard.yaml"}

// FileConfig is the on-disk YAML configuration shape for piiguard.
type FileConfig struct {
	Include         *string  `yaml:"include"`
	Exclude         *string  `yaml:"exclude"`
	MaxBytes        *int64   `yaml:"max_bytes"`
	Enable          *string  `yaml:"enable"`
	Disable         *string  `yaml:"disable"`
	Threads         *int     `yaml:"threads"`
	MinConfidence   *float64 `yaml:"min_confidence"`
	NoColor         *bool    `yaml:"no_color"`
	DefaultExcludes *bool    `yaml:"default_excludes"`
	NoValidators    *bool    `yaml:"no_validators"`
	CaseSensitive   *bool    `yaml:"case_sensitive"`
	MaskChar        *string  `yaml:"mask_char"`
	LogLevel        *string  `yaml:"log_level"`
	LogFormat       *string  `yaml:"log_format"`

	// Anonymize holds an optional embedded job; decode it with Job.
	Anonymize *yaml.Node `yaml:"anonymize"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LocalPath returns the first local config file present in root.
func LocalPath(root string) (string, bool) {
	for _, name := range localNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// LoadLocal searches for a project config file in root. It supports
// .piiguard.yml/.yaml and piiguard.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	if p, ok := LocalPath(root); ok {
		return LoadFile(p)
	}
	return FileConfig{}, fmt.Errorf("local: %w", ErrNoConfig)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, fmt.Errorf("no config dir: %w", ErrNoConfig)
	}
	p := filepath.Join(base, "piiguard", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, fmt.Errorf("global: %w", ErrNoConfig)
}

// Job decodes the embedded anonymize block over job defaults. ok is false when
// the file has no such block.
func (fc FileConfig) Job() (job anonymize.Config, ok bool, err error) {
	if fc.Anonymize == nil {
		return anonymize.Config{}, false, nil
	}
	job = anonymize.NewConfig("")
	if err := fc.Anonymize.Decode(&job); err != nil {
		return anonymize.Config{}, true, fmt.Errorf("anonymize block: %w", err)
	}
	if err := job.Validate(); err != nil {
		return anonymize.Config{}, true, err
	}
	return job, true, nil
}

// LoadJob reads a standalone anonymization job. Keys missing from the file
// keep the defaults of anonymize.NewConfig.
func LoadJob(path string) (anonymize.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return anonymize.Config{}, err
	}
	return DecodeJob(bytes.NewReader(b))
}

// DecodeJob decodes a job from r. A document with a top-level anonymize key
// is accepted as well.
func DecodeJob(r io.Reader) (anonymize.Config, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return anonymize.Config{}, fmt.Errorf("parse job: %w", err)
	}
	node := &root
	if len(root.Content) == 1 {
		node = root.Content[0]
	}
	if sub := mappingValue(node, "anonymize"); sub != nil {
		node = sub
	}
	job := anonymize.NewConfig("")
	if err := node.Decode(&job); err != nil {
		return anonymize.Config{}, fmt.Errorf("decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return anonymize.Config{}, err
	}
	return job, nil
}

// WriteJob writes job as YAML.
func WriteJob(w io.Writer, job anonymize.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(job); err != nil {
		return err
	}
	return enc.Close()
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// DetectorTemplate is the starter file written by `config init`.
const DetectorTemplate = `# piiguard configuration
min_confidence: 0.8
# enable: EMAIL,PHONE,SSN
# disable: LICENSE_PLATE
case_sensitive: false
mask_char: "*"
threads: 0
max_bytes: 1048576
default_excludes: true
# include: "**/*.{txt,csv,json,log}"
# exclude: "testdata/**"
log_level: warn
log_format: console
`
