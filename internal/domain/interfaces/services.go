package interfaces

import (
	"context"
	"encoding/json"

	domaintypes "mugen/internal/domain/types"
)

// SessionService owns the current security session and wraps payloads with it.
type SessionService interface {
	SessionID() (domaintypes.SessionID, bool)
	PerformHandshake(ctx context.Context, baseURL string) bool
	EnsureSession(ctx context.Context, baseURL string) error
	Reset()

	EncryptData(data any) (domaintypes.Envelope, error)
	DecryptData(env domaintypes.Envelope) (json.RawMessage, error)
}
