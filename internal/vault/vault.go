// Package vault implements reversible tokenization. Each field type owns two
// maps: value digest to token, and token to original value.
package vault

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	tokenPrefix = "TOK_"
	hashLength  = 16
	tokenLength = 12
)

// Snapshot is the exported form of a vault. Tokens maps field type to value
// digest to token; Reverse maps field type to token to original value.
type Snapshot struct {
	Tokens  map[string]map[string]string `json:"tokens" yaml:"tokens"`
	Reverse map[string]map[string]string `json:"reverse" yaml:"reverse"`
}

// Vault is a bidirectional token store. It is safe for concurrent use; each
// mutation holds the lock for the whole lookup-or-mint step so a value is
// never issued two tokens.
type Vault struct {
	key string
	log *zap.Logger

	mu      sync.RWMutex
	tokens  map[string]map[string]string
	reverse map[string]map[string]string
}

// Option configures a Vault.
type Option func(*Vault)

// WithKey sets the encryption key used by Seal. Empty keeps the generated key.
func WithKey(key string) Option {
	return func(v *Vault) {
		if key != "" {
			v.key = key
		}
	}
}

// WithLogger attaches a logger for debug events. Values are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(v *Vault) {
		if l != nil {
			v.log = l
		}
	}
}

// New returns an empty vault. Without WithKey a random key is generated.
func New(opts ...Option) *Vault {
	id := uuid.New()
	v := &Vault{
		key:     base64.StdEncoding.EncodeToString(id[:]),
		log:     zap.NewNop(),
		tokens:  make(map[string]map[string]string),
		reverse: make(map[string]map[string]string),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Key returns the encryption key in use.
func (v *Vault) Key() string { return v.key }

func digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:hashLength]
}

func newToken(fieldType string) string {
	hexID := strings.ReplaceAll(uuid.NewString(), "-", "")
	return tokenPrefix + strings.ToUpper(fieldType) + "_" + hexID[:tokenLength]
}

// Tokenize returns the token for value under fieldType, minting one on first use.
func (v *Vault) Tokenize(value, fieldType string) string {
	h := digest(value)

	v.mu.Lock()
	defer v.mu.Unlock()

	if tok, ok := v.tokens[fieldType][h]; ok {
		return tok
	}
	if v.tokens[fieldType] == nil {
		v.tokens[fieldType] = make(map[string]string)
	}
	if v.reverse[fieldType] == nil {
		v.reverse[fieldType] = make(map[string]string)
	}
	tok := newToken(fieldType)
	v.tokens[fieldType][h] = tok
	v.reverse[fieldType][tok] = value
	if ce := v.log.Check(zap.DebugLevel, "token minted"); ce != nil {
		ce.Write(zap.String("field_type", fieldType), zap.Int("size", len(v.reverse[fieldType])))
	}
	return tok
}

// Detokenize returns the original value for token. ok is false for unknown
// tokens and field types.
func (v *Vault) Detokenize(token, fieldType string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	orig, ok := v.reverse[fieldType][token]
	return orig, ok
}

// Len returns the number of tokens across all field types.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return lo.SumBy(lo.Values(v.reverse), func(m map[string]string) int { return len(m) })
}

// Export returns a deep copy of both maps.
func (v *Vault) Export() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{Tokens: copyNested(v.tokens), Reverse: copyNested(v.reverse)}
}

// Import replaces the vault contents with a deep copy of s. Forward entries
// missing from a partial snapshot are rebuilt from its reverse map.
func (v *Vault) Import(s Snapshot) {
	tokens, reverse := copyNested(s.Tokens), copyNested(s.Reverse)
	for ft, m := range reverse {
		if tokens[ft] == nil {
			tokens[ft] = make(map[string]string, len(m))
		}
		for tok, orig := range m {
			if _, ok := tokens[ft][digest(orig)]; !ok {
				tokens[ft][digest(orig)] = tok
			}
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens, v.reverse = tokens, reverse
}

// Flatten returns token to original across every field type.
func (v *Vault) Flatten() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return lo.Assign(lo.Values(v.reverse)...)
}

func copyNested(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for k, m := range in {
		out[k] = lo.Assign(m)
	}
	return out
}
