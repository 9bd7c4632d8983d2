package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"mugen/internal/domain"
)

// IVBytes is the AES-GCM nonce size used on the wire.
const IVBytes = 12

// NewAEAD returns AES-GCM over a 32-byte key.
func NewAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyBytes {
		return nil, errors.New("invalid session key size")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under a freshly drawn random IV.
func Seal(aead cipher.AEAD, plaintext []byte) (iv, ciphertext []byte, err error) {
	iv = make([]byte, IVBytes)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, err
	}
	return iv, aead.Seal(nil, iv, plaintext, nil), nil
}

// Open authenticates and decrypts ciphertext.
//
// A wrong key, a tampered ciphertext and a wrong IV length all surface as
// domain.ErrDecrypt.
func Open(aead cipher.AEAD, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", domain.ErrDecrypt, aead.NonceSize(), len(iv))
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecrypt, err)
	}
	return plaintext, nil
}
