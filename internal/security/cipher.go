package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/zoneboy/zilcycler/internal/logger"
)

const (
	// GCM is run with a 16-byte nonce so envelopes written by the previous
	// platform (which used a 16-byte IV) stay decryptable.
	envelopeIVSize  = 16
	envelopeTagSize = 16
)

var ErrDecryptFailed = errors.New("field decryption failed")

// FieldCipher encrypts individual sensitive fields (bank account numbers)
// with AES-256-GCM. The key is derived from the server secret with argon2id,
// so the raw secret is never used as key material directly.
//
// Envelope format: hex(iv):hex(ciphertext):hex(tag). Decrypt also accepts
// bare plaintext for rows written before encryption was introduced.
type FieldCipher struct {
	key []byte
	// strict turns a failed decryption into an error. The default returns
	// the stored value unchanged: a corrupted cosmetic field should not
	// take down the whole account read. Flip via config for deployments
	// that prefer confidentiality over availability.
	strict bool
}

func NewFieldCipher(secret, salt string, strict bool) *FieldCipher {
	key := argon2.IDKey([]byte(secret), []byte(salt), 1, 64*1024, 4, 32)
	return &FieldCipher{key: key, strict: strict}
}

func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, envelopeIVSize)
	if err != nil {
		return "", err
	}

	iv := make([]byte, envelopeIVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-envelopeTagSize]
	tag := sealed[len(sealed)-envelopeTagSize:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag)), nil
}

// Decrypt opens an envelope produced by Encrypt. Input that does not parse
// as an envelope is treated as legacy plaintext and returned as-is; a failed
// authentication returns the stored value unchanged unless strict mode is on.
func (c *FieldCipher) Decrypt(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	iv, ciphertext, tag, ok := parseEnvelope(stored)
	if !ok {
		// Pre-encryption legacy value.
		return stored, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return c.failOpen(stored, err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, envelopeIVSize)
	if err != nil {
		return c.failOpen(stored, err)
	}

	plaintext, err := aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return c.failOpen(stored, err)
	}
	return string(plaintext), nil
}

func (c *FieldCipher) failOpen(stored string, err error) (string, error) {
	if c.strict {
		return "", fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	logger.Warn("Returning stored value after decryption failure", "error", err)
	return stored, nil
}

func parseEnvelope(value string) (iv, ciphertext, tag []byte, ok bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return nil, nil, nil, false
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != envelopeIVSize {
		return nil, nil, nil, false
	}
	ciphertext, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, nil, false
	}
	tag, err = hex.DecodeString(parts[2])
	if err != nil || len(tag) != envelopeTagSize {
		return nil, nil, nil, false
	}
	return iv, ciphertext, tag, true
}
