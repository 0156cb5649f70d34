package rawcookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"
)

const (
	sealSalt       = "rawcookie"
	sealIterations = 4096
	sealKeyLen     = 32

	// sealPrefix versions the wire format: prefix || base64(nonce || ciphertext).
	sealPrefix = "v01"
)

// EnvSealPassword overrides keyring lookup for the sealing password.
const EnvSealPassword = "RAWCOOKIE_SEAL_PASSWORD"

// Sealer encrypts and decrypts cookie values with AES-256-GCM under a key
// derived from a password via PBKDF2-SHA256.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the sealing key from password and returns a ready
// Sealer.
func NewSealer(password string) (*Sealer, error) {
	if password == "" {
		return nil, errors.New("rawcookie: empty seal password")
	}
	key := pbkdf2.Key([]byte(password), []byte(sealSalt), sealIterations, sealKeyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// SealerFromKeyring resolves the sealing password and builds a Sealer.
// The EnvSealPassword environment variable wins; otherwise the password is
// read from the OS keyring under (service, account).
func SealerFromKeyring(service, account string) (*Sealer, error) {
	if pw := strings.TrimSpace(os.Getenv(EnvSealPassword)); pw != "" {
		return NewSealer(pw)
	}
	pw, err := keyring.Get(service, account)
	if err != nil {
		return nil, fmt.Errorf("%w: keyring service %q: %v", ErrNoSealPassword, service, err)
	}
	if strings.TrimSpace(pw) == "" {
		return nil, fmt.Errorf("%w: keyring service %q returned empty password", ErrNoSealPassword, service)
	}
	return NewSealer(pw)
}

// Seal encrypts value into the versioned text form sealPrefix||base64(nonce||ct).
func (s *Sealer) Seal(value string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	payload := s.aead.Seal(nonce, nonce, []byte(value), nil)
	return sealPrefix + base64.RawURLEncoding.EncodeToString(payload), nil
}

// Unseal reverses Seal. It fails on an unknown version prefix, a truncated
// payload, or an authentication failure.
func (s *Sealer) Unseal(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealPrefix) {
		return "", errors.New("rawcookie: sealed value missing version prefix")
	}
	payload, err := base64.RawURLEncoding.DecodeString(sealed[len(sealPrefix):])
	if err != nil {
		return "", err
	}
	if len(payload) < s.aead.NonceSize() {
		return "", fmt.Errorf("rawcookie: sealed value too short (%d bytes)", len(payload))
	}
	nonce := payload[:s.aead.NonceSize()]
	plain, err := s.aead.Open(nil, nonce, payload[s.aead.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// SealValue replaces the cookie's value with its sealed form.
func (s *Sealer) SealValue(c *Cookie) error {
	sealed, err := s.Seal(c.Value())
	if err != nil {
		return err
	}
	c.SetValue(sealed)
	return nil
}

// UnsealValue replaces the cookie's sealed value with the plaintext.
func (s *Sealer) UnsealValue(c *Cookie) error {
	plain, err := s.Unseal(c.Value())
	if err != nil {
		return err
	}
	c.SetValue(plain)
	return nil
}
