// Package cryptox implements the client-side encryption protocol: symmetric
// key tokens that travel in URL fragments, and AES-256-GCM payload blobs.
package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophslides/internal/common"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Key is raw AES-256 key material.
type Key [KeySize]byte

// tokenReplacer maps the standard base64 alphabet to its URL-safe form.
var tokenReplacer = strings.NewReplacer("+", "-", "/", "_")

// GenerateKey creates a random 256-bit key and returns it as a URL-safe token.
func GenerateKey() (string, error) {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return ExportKey(k), nil
}

// ExportKey encodes k as a URL-safe token. The token keeps base64 padding,
// '+' and '/' are substituted with '-' and '_'.
func ExportKey(k Key) string {
	return tokenReplacer.Replace(base64.StdEncoding.EncodeToString(k[:]))
}

// ImportKey decodes a token produced by ExportKey. Unpadded tokens are
// accepted too. Anything that does not decode to exactly KeySize bytes
// yields common.ErrInvalidKeyFormat.
func ImportKey(token string) (Key, error) {
	var k Key

	token = strings.TrimSpace(token)
	if token == "" {
		return k, fmt.Errorf("%w: empty token", common.ErrInvalidKeyFormat)
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(token)
	}
	if err != nil {
		return k, fmt.Errorf("%w: %v", common.ErrInvalidKeyFormat, err)
	}
	if len(raw) != KeySize {
		return k, fmt.Errorf("%w: expected %d bytes, got %d", common.ErrInvalidKeyFormat, KeySize, len(raw))
	}

	copy(k[:], raw)
	return k, nil
}
