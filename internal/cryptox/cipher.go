package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/gophslides/internal/common"
)

// NonceSize is the AES-GCM nonce length that prefixes every blob.
const NonceSize = 12

const tagSize = 16

func newGCM(k Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with AES-256-GCM under k.
//
// A fresh random 12-byte nonce is generated for every call, so encrypting
// the same plaintext twice yields different blobs. The result is
//
//	base64(nonce[12] ‖ ciphertext ‖ tag[16])
//
// using the standard base64 alphabet.
func Encrypt(plaintext string, k Key) (string, error) {
	aesgcm, err := newGCM(k)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// nonce is used as the dst prefix so the blob is nonce‖ciphertext.
	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Malformed blobs, a wrong key and
// tampered data all fail with common.ErrDecryptionFailed; no plaintext is
// returned on failure.
func Decrypt(blob string, k Key) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: malformed blob", common.ErrDecryptionFailed)
	}
	if len(combined) < NonceSize+tagSize {
		return "", fmt.Errorf("%w: blob too short (%d bytes)", common.ErrDecryptionFailed, len(combined))
	}

	aesgcm, err := newGCM(k)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	nonce, ciphertext := combined[:NonceSize], combined[NonceSize:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", common.ErrDecryptionFailed)
	}

	return string(plaintext), nil
}
