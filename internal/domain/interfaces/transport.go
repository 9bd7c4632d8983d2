package interfaces

import (
	"context"

	domaintypes "mugen/internal/domain/types"
)

// HandshakeTransport carries one handshake round trip to the peer.
//
// Implementations return a HandshakeError for non-2xx answers and never retry.
type HandshakeTransport interface {
	Handshake(
		ctx context.Context,
		baseURL string,
		req domaintypes.HandshakeRequest,
	) (domaintypes.HandshakeResponse, error)
}

// SealedTransport posts an encrypted envelope under an established session
// and returns the peer's encrypted answer.
type SealedTransport interface {
	PostSealed(
		ctx context.Context,
		path string,
		sessionID domaintypes.SessionID,
		env domaintypes.Envelope,
	) (domaintypes.Envelope, error)
}
