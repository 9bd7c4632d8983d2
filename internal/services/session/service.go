package session

import (
	"context"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"mugen/internal/crypto"
	"mugen/internal/domain"
	"mugen/internal/logging"
	"mugen/internal/protocol/handshake"
	"mugen/internal/util/memzero"
)

const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultRetryInterval    = 500 * time.Millisecond

	// flightKey is the single singleflight key: one handshake per Manager.
	flightKey = "handshake"
)

// Manager owns the current security session.
//
// A session is either fully established (id and key both set) or absent.
// Only the handshake path mutates it; EncryptData and DecryptData read the
// key under a read lock. Manager is safe for concurrent use.
type Manager struct {
	transport domain.HandshakeTransport
	log       *zap.Logger
	now       func() time.Time

	timeout       time.Duration
	retries       uint64
	retryInterval time.Duration
	maxAge        time.Duration

	flight singleflight.Group

	mu   sync.RWMutex
	id   domain.SessionID
	aead cipher.AEAD
}

// Option configures a Manager.
type Option func(*Manager)

// WithHandshakeTimeout bounds a single handshake attempt.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts EnsureSession makes after a failure.
func WithRetries(n uint64) Option { return func(m *Manager) { m.retries = n } }

// WithRetryInterval sets the initial backoff interval used by EnsureSession.
func WithRetryInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.retryInterval = d
		}
	}
}

// WithMaxPayloadAge rejects decrypted payloads whose timestamp is further
// than d from the local clock. Zero, the default, accepts any timestamp.
func WithMaxPayloadAge(d time.Duration) Option { return func(m *Manager) { m.maxAge = d } }

// WithClock replaces time.Now for payload timestamps.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// New constructs a Manager. No I/O happens until the first handshake.
func New(transport domain.HandshakeTransport, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		transport:     transport,
		log:           log,
		now:           time.Now,
		timeout:       DefaultHandshakeTimeout,
		retryInterval: DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SessionID returns the current session id, if a session is established.
func (m *Manager) SessionID() (domain.SessionID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id, m.aead != nil
}

// Active reports whether a session key is installed.
func (m *Manager) Active() bool {
	_, ok := m.SessionID()
	return ok
}

// Reset drops the current session.
func (m *Manager) Reset() {
	m.install("", nil)
}

// PerformHandshake establishes a new session with the peer at baseURL.
//
// Concurrent callers share one in-flight attempt and all observe its outcome.
// Once it completes the next call starts a fresh attempt. Failures are logged
// and reported as false; the manager is then left without a session.
func (m *Manager) PerformHandshake(ctx context.Context, baseURL string) bool {
	return m.handshake(ctx, baseURL) == nil
}

// EnsureSession returns immediately when a session is active. Otherwise it
// performs handshakes, retrying failed attempts with exponential backoff up
// to the configured retry count.
func (m *Manager) EnsureSession(ctx context.Context, baseURL string) error {
	if m.Active() {
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = m.retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(eb, m.retries), ctx)

	return backoff.RetryNotify(func() error {
		err := m.handshake(ctx, baseURL)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		m.log.Warn("handshake attempt failed, retrying",
			zap.Error(err),
			zap.Duration("backoff", wait),
		)
	})
}

// handshake joins or starts the single in-flight attempt. The attempt runs
// detached from ctx; ctx only bounds how long this caller waits.
func (m *Manager) handshake(ctx context.Context, baseURL string) error {
	// A caller that has already given up must not start an attempt, which
	// would drop the current session.
	if err := ctx.Err(); err != nil {
		return err
	}
	detached := context.WithoutCancel(ctx)
	ch := m.flight.DoChan(flightKey, func() (any, error) {
		return nil, m.execute(detached, baseURL)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) execute(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	// The previous session ends here whatever the outcome.
	m.install("", nil)

	res, err := handshake.Execute(ctx, m.transport, baseURL)
	if err != nil {
		m.install("", nil)
		fields := []zap.Field{zap.String("endpoint", baseURL), zap.Error(err)}
		var he *domain.HandshakeError
		if errors.As(err, &he) {
			fields = append(fields, zap.Int("status", he.StatusCode))
		}
		m.log.Error("handshake failed", fields...)
		return err
	}
	defer memzero.Zero(res.Key)

	aead, err := crypto.NewAEAD(res.Key)
	if err != nil {
		m.install("", nil)
		m.log.Error("handshake failed", zap.String("endpoint", baseURL), zap.Error(err))
		return err
	}
	m.install(res.SessionID, aead)

	logging.WithSession(m.log, res.SessionID).Info("security session established",
		zap.String("endpoint", baseURL),
		zap.String("peer_fingerprint", res.PeerFingerprint.String()),
	)
	return nil
}

func (m *Manager) install(id domain.SessionID, aead cipher.AEAD) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if aead == nil {
		id = ""
	}
	m.id, m.aead = id, aead
}

// Current returns the established session, if any. The returned Session
// keeps its key after the Manager moves on to a newer session, so a request
// and its reply can be handled under the same key.
func (m *Manager) Current() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.aead == nil {
		return nil, false
	}
	return &Session{id: m.id, aead: m.aead, log: m.log, now: m.now, maxAge: m.maxAge}, true
}

// EncryptData seals data, wrapped with the current millisecond timestamp,
// under the session key.
func (m *Manager) EncryptData(data any) (domain.Envelope, error) {
	s, ok := m.Current()
	if !ok {
		return domain.Envelope{}, domain.ErrNoSession
	}
	return s.Encrypt(data)
}

// DecryptData opens env and returns the inner data of the payload wrapper.
func (m *Manager) DecryptData(env domain.Envelope) (json.RawMessage, error) {
	s, ok := m.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}
	return s.Decrypt(env)
}

// DecryptInto decrypts env and unmarshals its data into out.
func (m *Manager) DecryptInto(env domain.Envelope, out any) error {
	s, ok := m.Current()
	if !ok {
		return domain.ErrNoSession
	}
	return s.DecryptInto(env, out)
}

// Compile-time assertion that Manager implements domain.SessionService.
var _ domain.SessionService = (*Manager)(nil)
