// Package secretbox provides authenticated encryption for secrets stored at rest.
//
// Ciphertext layout is a hex-encoded envelope of salt(64) || iv(16) || tag(16) || data.
// Each call derives a fresh per-ciphertext key from the master key and a random
// salt, so identical plaintexts never produce identical envelopes and a leaked
// envelope cannot be attacked with precomputed tables.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize = 64
	ivSize   = 16
	tagSize  = 16
	keySize  = 32

	kdfIterations = 100000

	// masterSalt is the fixed application-level salt used only to stretch a
	// non-hex master secret into key material. Per-ciphertext salts are random.
	masterSalt = "rental-service-credential-vault"
)

var (
	// ErrKeyRequired is returned when no master secret is configured.
	ErrKeyRequired = errors.New("encryption secret is required")
	// ErrMalformedCiphertext is returned when an envelope cannot be decoded or is too short.
	ErrMalformedCiphertext = errors.New("malformed ciphertext envelope")
	// ErrDecryptFailed is returned when authentication fails during decryption.
	ErrDecryptFailed = errors.New("decryption failed: ciphertext rejected")
)

// Box encrypts and decrypts short secrets with AES-256-GCM.
type Box struct {
	masterKey []byte
}

// New creates a Box from the configured master secret.
// A secret that is exactly 64 hex characters is used directly as 32 raw key
// bytes; anything else is stretched through PBKDF2-SHA512.
func New(secret string) (*Box, error) {
	if secret == "" {
		return nil, ErrKeyRequired
	}

	if len(secret) == 2*keySize {
		if raw, err := hex.DecodeString(secret); err == nil {
			return &Box{masterKey: raw}, nil
		}
	}

	key := pbkdf2.Key([]byte(secret), []byte(masterSalt), kdfIterations, keySize, sha512.New)
	return &Box{masterKey: key}, nil
}

// Encrypt seals plaintext into a hex envelope of salt || iv || tag || data.
func (b *Box) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	gcm, err := b.aead(salt)
	if err != nil {
		return "", err
	}

	// Seal returns data || tag; the stored layout keeps the tag ahead of the data.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	data, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	envelope := make([]byte, 0, saltSize+ivSize+tagSize+len(data))
	envelope = append(envelope, salt...)
	envelope = append(envelope, iv...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, data...)

	return hex.EncodeToString(envelope), nil
}

// Decrypt opens a hex envelope produced by Encrypt.
// It fails closed: tampered or truncated input returns an error, never garbage.
func (b *Box) Decrypt(encoded string) (string, error) {
	envelope, err := hex.DecodeString(encoded)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	if len(envelope) < saltSize+ivSize+tagSize {
		return "", ErrMalformedCiphertext
	}

	salt := envelope[:saltSize]
	iv := envelope[saltSize : saltSize+ivSize]
	tag := envelope[saltSize+ivSize : saltSize+ivSize+tagSize]
	data := envelope[saltSize+ivSize+tagSize:]

	gcm, err := b.aead(salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(data)+tagSize)
	sealed = append(sealed, data...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}

// aead derives the per-ciphertext key for the given salt and builds the cipher.
func (b *Box) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(b.masterKey, salt, kdfIterations, keySize, sha512.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gcm: %w", err)
	}
	return gcm, nil
}
