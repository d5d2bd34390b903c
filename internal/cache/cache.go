// Package cache persists per-file detection results between scans so files
// whose content has not changed are not scanned again. Only spans, labels and
// confidences are stored; matched text is never written to disk.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/redactyl/piiguard/internal/types"
)

// FileName is the cache file written under .git, or under the root when the
// tree is not a git checkout.
const FileName = "piiguard-cache.json"

// Span is a stored entity without its text.
type Span struct {
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language,omitempty"`
}

// Entry is the cached result for one file.
type Entry struct {
	Hash  string `json:"hash"`
	Spans []Span `json:"spans,omitempty"`
}

type DB struct {
	// Fingerprint identifies the detector settings the entries were produced with.
	Fingerprint string `json:"fingerprint"`
	// Path relative to root -> cached result
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, FileName)
	}
	return filepath.Join(root, "."+FileName)
}

// Load reads the cache for root. A missing or unreadable cache, or one built
// with a different fingerprint, yields an empty DB.
func Load(root, fingerprint string) (DB, error) {
	empty := DB{Fingerprint: fingerprint, Entries: map[string]Entry{}}
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return empty, err
	}
	var db DB
	if err := json.Unmarshal(f, &db); err != nil {
		return empty, err
	}
	if db.Fingerprint != fingerprint || db.Entries == nil {
		return empty, nil
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0600)
}

// Lookup returns the cached entities for path when hash matches, with text
// restored from data.
func (db DB) Lookup(path, hash string, data []byte) ([]types.Entity, bool) {
	e, ok := db.Entries[path]
	if !ok || e.Hash != hash {
		return nil, false
	}
	out := make([]types.Entity, 0, len(e.Spans))
	for _, s := range e.Spans {
		if s.Start < 0 || s.End > len(data) || s.Start > s.End {
			return nil, false
		}
		out = append(out, types.Entity{
			Text:       string(data[s.Start:s.End]),
			Label:      s.Label,
			Start:      s.Start,
			End:        s.End,
			Confidence: s.Confidence,
			Language:   s.Language,
		})
	}
	return out, true
}

// Put records entities for path.
func (db DB) Put(path, hash string, entities []types.Entity) {
	spans := make([]Span, len(entities))
	for i, e := range entities {
		spans[i] = Span{Label: e.Label, Start: e.Start, End: e.End, Confidence: e.Confidence, Language: e.Language}
	}
	db.Entries[path] = Entry{Hash: hash, Spans: spans}
}
