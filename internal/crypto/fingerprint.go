package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"mugen/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a DER-encoded public key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(der []byte) domain.Fingerprint {
	sum := sha256.Sum256(der)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
