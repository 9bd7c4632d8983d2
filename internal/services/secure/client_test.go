package secure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mugen/internal/api"
	"mugen/internal/domain"
	"mugen/internal/server"
	"mugen/internal/services/secure"
	"mugen/internal/services/session"
)

// countingHandshakes counts handshakes passing through to the real transport.
type countingHandshakes struct {
	domain.HandshakeTransport
	n atomic.Int32
}

func (c *countingHandshakes) Handshake(ctx context.Context, base string, req domain.HandshakeRequest) (domain.HandshakeResponse, error) {
	c.n.Add(1)
	return c.HandshakeTransport.Handshake(ctx, base, req)
}

// rejectingSealed answers every sealed call as if the session were unknown.
type rejectingSealed struct{ n atomic.Int32 }

func (r *rejectingSealed) PostSealed(context.Context, string, domain.SessionID, domain.Envelope) (domain.Envelope, error) {
	r.n.Add(1)
	return domain.Envelope{}, &domain.StatusError{Method: http.MethodPost, URL: "/echo", StatusCode: http.StatusUnauthorized}
}

type fixture struct {
	srv        *server.Server
	ts         *httptest.Server
	transport  *api.HTTP
	handshakes *countingHandshakes
	sessions   *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := server.New(zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	h := api.NewHTTP(ts.URL, ts.Client())
	hs := &countingHandshakes{HandshakeTransport: h}
	return &fixture{srv: srv, ts: ts, transport: h, handshakes: hs, sessions: session.New(hs, zap.NewNop())}
}

type echoReply struct {
	Echo map[string]string `json:"echo"`
}

func TestCall_RoundTrip(t *testing.T) {
	f := newFixture(t)
	c := secure.NewClient(f.sessions, f.transport, f.ts.URL, nil)

	var out echoReply
	require.NoError(t, c.Call(context.Background(), "/echo", map[string]string{"foo": "bar"}, &out))
	require.Equal(t, map[string]string{"foo": "bar"}, out.Echo)

	require.NoError(t, c.Call(context.Background(), "/echo", map[string]string{"n": "2"}, &out))
	require.EqualValues(t, 1, f.handshakes.n.Load(), "session reused")
	require.Equal(t, 1, f.srv.Sessions())
}

func TestCall_NilOut(t *testing.T) {
	f := newFixture(t)
	c := secure.NewClient(f.sessions, f.transport, f.ts.URL, zap.NewNop())
	require.NoError(t, c.Call(context.Background(), "/echo", 42, nil))
}

func TestCall_RehandshakesWhenPeerForgetsSession(t *testing.T) {
	f := newFixture(t)
	c := secure.NewClient(f.sessions, f.transport, f.ts.URL, nil)

	var out echoReply
	require.NoError(t, c.Call(context.Background(), "/echo", map[string]string{"a": "1"}, &out))
	old, _ := f.sessions.SessionID()
	f.srv.Drop(old)

	var again echoReply
	require.NoError(t, c.Call(context.Background(), "/echo", map[string]string{"b": "2"}, &again))
	require.Equal(t, map[string]string{"b": "2"}, again.Echo)

	cur, ok := f.sessions.SessionID()
	require.True(t, ok)
	require.NotEqual(t, old, cur)
	require.EqualValues(t, 2, f.handshakes.n.Load())
}

func TestCall_SecondRejectionSurfaces(t *testing.T) {
	f := newFixture(t)
	sealed := &rejectingSealed{}
	c := secure.NewClient(f.sessions, sealed, f.ts.URL, nil)

	err := c.Call(context.Background(), "/echo", "x", nil)
	require.ErrorIs(t, err, domain.ErrSessionRejected)
	require.EqualValues(t, 2, sealed.n.Load())
	require.EqualValues(t, 2, f.handshakes.n.Load())
}

func TestCall_HandshakeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	h := api.NewHTTP(ts.URL, ts.Client())
	sealed := &rejectingSealed{}
	c := secure.NewClient(session.New(h, nil), sealed, ts.URL, nil)

	err := c.Call(context.Background(), "/echo", "x", nil)
	require.ErrorIs(t, err, domain.ErrHandshake)
	require.Zero(t, sealed.n.Load())
}

// rehandshakingSealed posts through next, then replaces the caller's session
// before the reply is handled.
type rehandshakingSealed struct {
	next     domain.SealedTransport
	sessions *session.Manager
	baseURL  string
}

func (r *rehandshakingSealed) PostSealed(ctx context.Context, path string, id domain.SessionID, env domain.Envelope) (domain.Envelope, error) {
	reply, err := r.next.PostSealed(ctx, path, id, env)
	if err != nil {
		return reply, err
	}
	if !r.sessions.PerformHandshake(ctx, r.baseURL) {
		return domain.Envelope{}, domain.ErrHandshake
	}
	return reply, nil
}

func TestCall_ReplyOpensUnderRequestSession(t *testing.T) {
	f := newFixture(t)
	sealed := &rehandshakingSealed{next: f.transport, sessions: f.sessions, baseURL: f.ts.URL}
	c := secure.NewClient(f.sessions, sealed, f.ts.URL, nil)

	var out echoReply
	require.NoError(t, c.Call(context.Background(), "/echo", map[string]string{"a": "b"}, &out))
	require.Equal(t, map[string]string{"a": "b"}, out.Echo)
	require.EqualValues(t, 2, f.handshakes.n.Load())
}
