// Package crypto exposes the minimal primitives used by the security session.
//
// Contents
//
//   - Base64 and PEM encoding of key and ciphertext material (BufferToBase64,
//     Base64ToBytes, DERToPEM, PEMToDER)
//   - Ephemeral P-256 ECDH key generation, SPKI import/export and shared
//     secret computation (GenerateP256, MarshalPublicKey, ParsePublicKey,
//     SharedSecret)
//   - HKDF-SHA256 derivation of the AES-256-GCM session key (DeriveSessionKey)
//   - AES-GCM sealing with a fresh 12-byte IV per call (NewAEAD, Seal, Open)
//   - Short public-key fingerprints for logging (Fingerprint)
//
// # Notes
//
// The HKDF salt (32 zero bytes) and info ("handshake data") are a wire
// contract with the peer and are not configurable. Changing
// either needs a protocol version bump on both sides.
//
// Errors wrap the sentinels in internal/domain (ErrDecode, ErrFormat,
// ErrDecrypt) so callers can match them with errors.Is.
package crypto
