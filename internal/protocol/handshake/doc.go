// Package handshake implements the client-initiated ECDH key exchange that
// establishes a security session with the API server.
//
// # Overview
//
// One round trip over HTTP yields a shared AES-256-GCM session key and an
// opaque session id issued by the peer. Every attempt uses a fresh ephemeral
// P-256 key pair; nothing is resumed or reused across attempts.
//
// # Flows
//
// Initiator (Execute):
//  1. Generate an ephemeral P-256 ECDH key pair.
//  2. Export the public key as SPKI/DER and wrap it as PEM.
//  3. POST {"public_key": pem} to {base}/handshake.
//  4. Reject non-2xx answers with a HandshakeError carrying the status.
//  5. Require session_id and public_key in the response.
//  6. Import the peer's PEM public key (P-256 only).
//  7. ECDH between our private key and the peer key.
//  8. HKDF-SHA256 (32 zero salt, info "handshake data") to a 32-byte key.
//
// Responder (Respond):
//  1. Import the client PEM public key.
//  2. Generate an ephemeral P-256 key pair.
//  3. ECDH and the same HKDF to the identical key.
//  4. Return our PEM public key for the response body.
//
// # Errors
//
// Execute wraps every failure so that errors.Is(err, domain.ErrHandshake)
// holds; the underlying cause (decode, format, transport) stays reachable
// through errors.As/Unwrap.
//
// # Security notes
//
// Only public material crosses the wire. The raw ECDH secret is wiped after
// key derivation and the ephemeral private key is dropped when Execute or
// Respond returns.
package handshake
