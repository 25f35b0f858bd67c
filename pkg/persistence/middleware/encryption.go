package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// encryptedPrefix marks a stored id as ciphertext.
const encryptedPrefix = "enc."

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new ids.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables key rotation without re-registering bots.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.IdentityStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that stores bot ids
// encrypted with AES-GCM. Names stay readable for lookup.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != KeySize {
		return nil, fmt.Errorf("%w: active key must be %d bytes (AES-256), got %d", domain.ErrParameter, KeySize, len(config.ActiveKey))
	}
	return func(next ports.IdentityStore) ports.IdentityStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

// ParseKey decodes a base64 (standard or URL alphabet) AES-256 key.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if key, err := enc.DecodeString(s); err == nil && len(key) == KeySize {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w: encryption key must be %d base64-encoded bytes", domain.ErrParameter, KeySize)
}

func (m *encryptionMiddleware) Save(ctx context.Context, identity domain.Identity) error {
	ciphertext, err := encrypt([]byte(identity.ID), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt identity: %w", err)
	}
	identity.ID = encryptedPrefix + base64.RawURLEncoding.EncodeToString(ciphertext)
	return m.next.Save(ctx, identity)
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) (domain.Identity, error) {
	identity, err := m.next.Load(ctx, name)
	if err != nil {
		return identity, err
	}

	encoded, ok := strings.CutPrefix(identity.ID, encryptedPrefix)
	if !ok {
		// fail secure: a plain id in an encrypted store was not written by us
		return domain.Identity{}, errors.New("stored identity is not encrypted")
	}
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to decrypt identity: %w", err)
	}
	identity.ID = string(plainText)
	return identity, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
