package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// tokenSeparator splits the base64 nonce from the base64 ciphertext in the
// externally visible token: <nonce><sep><ciphertext>.
const tokenSeparator = ":"

// ErrInvalidToken is returned for any token that cannot be decrypted --
// malformed, truncated, or tampered. Callers treat all of these identically
// as "invalid session" and never learn which case occurred.
var ErrInvalidToken = errors.New("invalid session token")

// tokenEncoding is URL-safe unpadded base64 so tokens survive headers and
// cookies without escaping.
var tokenEncoding = base64.RawURLEncoding

// TokenCodec encrypts raw session identifiers before they leave the server.
// The client only ever sees the AES-256-GCM ciphertext; decryption recovers
// the Redis key. The key is process-wide static configuration -- no rotation
// is modeled.
type TokenCodec struct {
	aead cipher.AEAD
}

// NewTokenCodec derives an AES-256 key from the configured secret with
// SHA-256 (so any secret length works consistently) and prepares the GCM
// AEAD once for the process lifetime.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &TokenCodec{aead: aead}, nil
}

// Encrypt seals a raw session identifier into an opaque token. A fresh
// random nonce is generated per call and transmitted alongside the
// ciphertext -- the nonce is not secret, only unique.
func (c *TokenCodec) Encrypt(rawID string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, []byte(rawID), nil)

	return tokenEncoding.EncodeToString(nonce) + tokenSeparator +
		tokenEncoding.EncodeToString(ciphertext), nil
}

// Decrypt recovers the raw session identifier from a token. Every failure
// path returns ErrInvalidToken: the GCM tag makes tampering detection
// deterministic, and callers must not be able to distinguish "malformed"
// from "wrong key".
func (c *TokenCodec) Decrypt(token string) (string, error) {
	noncePart, cipherPart, found := strings.Cut(token, tokenSeparator)
	if !found {
		return "", ErrInvalidToken
	}

	nonce, err := tokenEncoding.DecodeString(noncePart)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", ErrInvalidToken
	}

	ciphertext, err := tokenEncoding.DecodeString(cipherPart)
	if err != nil {
		return "", ErrInvalidToken
	}

	rawID, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidToken
	}

	return string(rawID), nil
}
