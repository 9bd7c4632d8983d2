package server

import (
	"crypto/cipher"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"mugen/internal/crypto"
	"mugen/internal/domain"
	"mugen/internal/logging"
	"mugen/internal/protocol/envelope"
	"mugen/internal/protocol/handshake"
	"mugen/internal/util/memzero"
)

const (
	DefaultSessionTTL = 30 * time.Minute

	maxBody = 1 << 20
)

type Server struct {
	log      *zap.Logger
	now      func() time.Time
	maxAge   time.Duration
	sessions *cache.Cache
	mux      *http.ServeMux
}

type Option func(*Server)

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sessions = cache.New(d, d/2)
		}
	}
}

// WithMaxPayloadAge rejects sealed requests whose timestamp is further than d
// from the server clock. Zero accepts any timestamp.
func WithMaxPayloadAge(d time.Duration) Option { return func(s *Server) { s.maxAge = d } }

// WithClock replaces time.Now for reply timestamps and freshness checks.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func New(log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log:      log,
		now:      time.Now,
		sessions: cache.New(DefaultSessionTTL, DefaultSessionTTL/2),
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("POST /handshake", s.handleHandshake)
	s.mux.HandleFunc("POST /echo", s.handleEcho)
	return s
}

// Handler returns the API with access logging.
func (s *Server) Handler() http.Handler { return accessLog(s.log, s.mux) }

// Sessions reports how many sessions are held, including expired entries not
// yet purged.
func (s *Server) Sessions() int { return s.sessions.ItemCount() }

func (s *Server) handleHandshake(w http.ResponseWriter, r *http.Request) {
	var req domain.HandshakeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	serverPEM, key, err := handshake.Respond(req.PublicKey)
	if err != nil {
		logging.Security(s.log, "rejected handshake", zap.String("remote", r.RemoteAddr), zap.Error(err))
		http.Error(w, "invalid public key", http.StatusBadRequest)
		return
	}
	defer memzero.Zero(key)

	aead, err := crypto.NewAEAD(key)
	if err != nil {
		s.log.Error("session setup failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	id := domain.SessionID(uuid.NewString())
	s.sessions.Set(id.String(), aead, cache.DefaultExpiration)
	logging.WithSession(s.log, id).Info("session opened", zap.String("remote", r.RemoteAddr))

	writeJSON(w, http.StatusOK, domain.HandshakeResponse{SessionID: id, PublicKey: serverPEM})
}

func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(r.Header.Get(domain.SessionHeader))
	aead, ok := s.lookup(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusUnauthorized)
		return
	}
	log := logging.WithSession(s.log, id)

	var env domain.Envelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&env); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	p, err := envelope.Open(aead, env)
	if err == nil {
		err = envelope.CheckFreshness(p, s.now(), s.maxAge)
	}
	if err != nil {
		logging.Security(log, "rejected sealed request", zap.Error(err))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	s.sessions.Set(id.String(), aead, cache.DefaultExpiration)

	reply, err := envelope.Seal(aead, map[string]json.RawMessage{"echo": p.Data}, s.now())
	if err != nil {
		log.Error("seal reply failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) lookup(id domain.SessionID) (cipher.AEAD, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.sessions.Get(id.String())
	if !ok {
		return nil, false
	}
	aead, ok := v.(cipher.AEAD)
	return aead, ok
}

// Drop forgets a session, as if it had expired.
func (s *Server) Drop(id domain.SessionID) { s.sessions.Delete(id.String()) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
