package app

import (
	"net/http"

	"go.uber.org/zap"

	"mugen/internal/api"
	"mugen/internal/server"
	"mugen/internal/services/secure"
	"mugen/internal/services/session"
)

// Wire bundles the transport and services a client needs.
type Wire struct {
	API      *api.HTTP
	Sessions *session.Manager
	Secure   *secure.Client
	HTTP     *http.Client
}

// NewWire constructs the client dependency graph from cfg.
func NewWire(cfg Config, log *zap.Logger) *Wire {
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HandshakeTimeout}
	}

	transport := api.NewHTTP(cfg.APIBaseURL, httpClient)
	sessions := session.New(transport, log,
		session.WithHandshakeTimeout(cfg.HandshakeTimeout),
		session.WithRetries(cfg.HandshakeRetries),
		session.WithMaxPayloadAge(cfg.MaxPayloadAge),
	)

	return &Wire{
		API:      transport,
		Sessions: sessions,
		Secure:   secure.NewClient(sessions, transport, cfg.APIBaseURL, log),
		HTTP:     httpClient,
	}
}

// NewServer constructs the reference peer from cfg.
func NewServer(cfg Config, log *zap.Logger) *server.Server {
	return server.New(log,
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithMaxPayloadAge(cfg.MaxPayloadAge),
	)
}
