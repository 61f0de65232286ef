package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters used to stretch the store passphrase into an AES key.
const (
	kdfMemory      = 19 * 1024 // KiB
	kdfIterations  = 2
	kdfParallelism = 1
	kdfKeyLength   = 32

	// SaltSize is the length of the per-store KDF salt.
	SaltSize = 16
)

// sealedPrefix marks values written by SealString so plaintext values from
// an unsealed store are still readable.
const sealedPrefix = "sealed:v1:"

// ErrCiphertext is returned when sealed data is truncated or was produced
// with another key.
var ErrCiphertext = errors.New("cryptox: cannot open sealed value")

// Sealer encrypts credentials at rest using AES-256-GCM.
// Output format: [12-byte nonce][ciphertext][16-byte tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a key from passphrase and salt with Argon2id.
func NewSealer(passphrase string, salt []byte) (*Sealer, error) {
	if passphrase == "" {
		return nil, errors.New("cryptox: empty passphrase")
	}
	if len(salt) < 8 {
		return nil, errors.New("cryptox: salt too short")
	}

	key := argon2.IDKey([]byte(passphrase), salt, kdfIterations, kdfMemory, kdfParallelism, kdfKeyLength)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrCiphertext
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrCiphertext
	}
	return plaintext, nil
}

// SealString seals v and returns a printable, prefixed form.
func (s *Sealer) SealString(v string) (string, error) {
	sealed, err := s.Seal([]byte(v))
	if err != nil {
		return "", err
	}
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString. Values without the sealed prefix are
// returned unchanged.
func (s *Sealer) OpenString(v string) (string, error) {
	rest, ok := strings.CutPrefix(v, sealedPrefix)
	if !ok {
		return v, nil
	}

	sealed, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return "", ErrCiphertext
	}
	plaintext, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// IsSealed reports whether v was produced by SealString.
func IsSealed(v string) bool {
	return strings.HasPrefix(v, sealedPrefix)
}

// LoadPassphrase reads the store passphrase from path when set, otherwise
// from the environment variable env. An empty result means sealing is off.
func LoadPassphrase(path, env string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return os.Getenv(env), nil
}
