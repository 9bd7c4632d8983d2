package secure

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mugen/internal/domain"
	"mugen/internal/logging"
	"mugen/internal/services/session"
)

// Sessions is the part of the session manager a Client drives.
type Sessions interface {
	EnsureSession(ctx context.Context, baseURL string) error
	Current() (*session.Session, bool)
	SessionID() (domain.SessionID, bool)
	Reset()
}

type Client struct {
	sessions  Sessions
	transport domain.SealedTransport
	baseURL   string
	log       *zap.Logger
}

func NewClient(sessions Sessions, transport domain.SealedTransport, baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{sessions: sessions, transport: transport, baseURL: baseURL, log: log}
}

// Call seals in, posts it to path and opens the answer into out. A nil out
// discards the answer after it has been authenticated.
func (c *Client) Call(ctx context.Context, path string, in, out any) error {
	err := c.call(ctx, path, in, out)
	if !retryable(err) {
		return err
	}

	id, _ := c.sessions.SessionID()
	logging.Security(logging.WithSession(c.log, id), "security session unavailable, retrying handshake",
		zap.String("path", path), zap.Error(err))
	c.sessions.Reset()
	return c.call(ctx, path, in, out)
}

func (c *Client) call(ctx context.Context, path string, in, out any) error {
	if err := c.sessions.EnsureSession(ctx, c.baseURL); err != nil {
		return err
	}
	// Request and reply share one session even if another caller
	// re-handshakes while this one is in flight.
	s, ok := c.sessions.Current()
	if !ok {
		return domain.ErrNoSession
	}

	env, err := s.Encrypt(in)
	if err != nil {
		return err
	}
	reply, err := c.transport.PostSealed(ctx, path, s.ID(), env)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}

	if out == nil {
		_, err = s.Decrypt(reply)
		return err
	}
	return s.DecryptInto(reply, out)
}

func retryable(err error) bool {
	return errors.Is(err, domain.ErrSessionRejected) || errors.Is(err, domain.ErrNoSession)
}
