// Package api provides the HTTP transport between a mugen client and its
// backend.
//
// # Overview
//
// HTTP implements both domain.HandshakeTransport and domain.SealedTransport.
// Requests are JSON over HTTP and honour the caller's context.
//
//   - Handshake posts the client's ephemeral public key to {base}/handshake
//     and decodes the {session_id, public_key} answer.
//   - PostSealed posts an {iv, content} envelope to a path under Base,
//     tagging the request with the X-Session-ID header, and decodes the
//     sealed answer.
//
// # Errors
//
// A non-2xx answer to a handshake is returned as *domain.HandshakeError
// carrying the status code. A non-2xx answer to a sealed call is returned as
// *domain.StatusError; statuses meaning "unknown session" match
// domain.ErrSessionRejected.
package api
