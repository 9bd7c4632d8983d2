package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeyBytes is the AES-256 session key size.
const KeyBytes = 32

// Wire constants shared with the peer. Do not change without a protocol bump.
var (
	handshakeSalt = make([]byte, sha256.Size)
	handshakeInfo = []byte("handshake data")
)

// DeriveSessionKey expands a raw ECDH secret into the AES-256-GCM session key
// with HKDF-SHA256.
func DeriveSessionKey(secret []byte) ([]byte, error) {
	kdf := hkdf.New(sha256.New, secret, handshakeSalt, handshakeInfo)
	key := make([]byte, KeyBytes)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return key, nil
}
