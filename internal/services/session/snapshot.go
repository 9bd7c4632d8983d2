package session

import (
	"crypto/cipher"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"mugen/internal/domain"
	"mugen/internal/logging"
	"mugen/internal/protocol/envelope"
)

// Session is one established security session: a peer-issued id and the key
// bound to it.
type Session struct {
	id     domain.SessionID
	aead   cipher.AEAD
	log    *zap.Logger
	now    func() time.Time
	maxAge time.Duration
}

// ID returns the peer-issued session id.
func (s *Session) ID() domain.SessionID { return s.id }

// Encrypt seals data with the current millisecond timestamp.
func (s *Session) Encrypt(data any) (domain.Envelope, error) {
	return envelope.Seal(s.aead, data, s.now())
}

// Decrypt opens env and returns the inner data of the payload wrapper.
func (s *Session) Decrypt(env domain.Envelope) (json.RawMessage, error) {
	log := logging.WithSession(s.log, s.id)
	p, err := envelope.Open(s.aead, env)
	if err != nil {
		if errors.Is(err, domain.ErrDecrypt) || errors.Is(err, domain.ErrMalformedPayload) {
			logging.Security(log, "rejected encrypted payload", zap.Error(err))
		}
		return nil, err
	}
	if err := envelope.CheckFreshness(p, s.now(), s.maxAge); err != nil {
		logging.Security(log, "rejected stale payload", zap.Error(err))
		return nil, err
	}
	return p.Data, nil
}

// DecryptInto decrypts env and unmarshals its data into out.
func (s *Session) DecryptInto(env domain.Envelope, out any) error {
	data, err := s.Decrypt(env)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
