// Package server implements the peer half of the handshake protocol.
//
// It backs cmd/handshaked and serves as the real counterpart in end-to-end
// tests.
//
// # HTTP API
//
//	POST /handshake {"public_key": PEM}
//	    Answer with {"session_id", "public_key"} and remember the derived key.
//
//	POST /echo {"iv", "content"}   (X-Session-ID required)
//	    Open the envelope and answer with an envelope sealing
//	    {"echo": <data>} under the same session.
//
// # Notes
//
//   - Sessions live in memory with a sliding TTL and are lost on exit.
//   - Only the AEAD is kept per session; raw key bytes are wiped after setup.
//   - An unknown or expired session is answered with 401, a payload that does
//     not open with 400.
package server
