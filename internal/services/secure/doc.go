// Package secure sends application requests over an established security
// session.
//
// # Flows
//
// Call ensures a session, seals the request under it, posts the envelope and
// opens the sealed answer into the caller's value. When the peer no longer
// knows the session, or the session was dropped locally in the meantime, the
// client resets it, performs one fresh handshake and retries the call once.
//
// # Errors
//
// Handshake failures surface as domain.ErrHandshake, a second rejection as
// domain.ErrSessionRejected, and answers that do not open as
// domain.ErrDecrypt or domain.ErrMalformedPayload.
package secure
