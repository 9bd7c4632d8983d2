// Package session holds the process's security session with the API server.
//
// Manager is constructed explicitly and passed to whatever needs to encrypt
// or decrypt payloads; there is no package-level instance. It coalesces
// concurrent handshakes into one attempt, installs the session id and key
// together, and wraps JSON values into sealed envelopes.
//
// # States
//
//   - Uninitialized: no id, no key. EncryptData/DecryptData fail with
//     domain.ErrNoSession. A failed handshake also lands here.
//   - Active: id and key installed by a successful handshake, used for both
//     directions until the next handshake or Reset.
//
// A new handshake first drops the current session, so callers briefly see
// Uninitialized while it runs.
package session
