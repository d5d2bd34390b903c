package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrSealedTooShort is returned when a sealed blob is shorter than its nonce.
var ErrSealedTooShort = errors.New("sealed vault too short")

func aead(key string) (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts s as JSON with AES-256-GCM. The nonce is prepended to the
// ciphertext.
func Seal(key string, s Snapshot) ([]byte, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	gcm, err := aead(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// OpenSealed reverses Seal.
func OpenSealed(key string, blob []byte) (Snapshot, error) {
	gcm, err := aead(key)
	if err != nil {
		return Snapshot{}, err
	}
	n := gcm.NonceSize()
	if len(blob) < n {
		return Snapshot{}, ErrSealedTooShort
	}
	plain, err := gcm.Open(nil, blob[:n], blob[n:], nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open sealed vault: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(plain, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// Seal exports the vault and encrypts it with the vault key.
func (v *Vault) Seal() ([]byte, error) {
	return Seal(v.key, v.Export())
}

// Unseal decrypts blob with the vault key and imports it.
func (v *Vault) Unseal(blob []byte) error {
	s, err := OpenSealed(v.key, blob)
	if err != nil {
		return err
	}
	v.Import(s)
	return nil
}
