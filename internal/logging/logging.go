// Package logging builds the zap loggers used by the client and the peer.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mugen/internal/domain"
)

// Config holds the configuration for the logger.
type Config struct {
	Service     string // "mugen" or "handshaked"
	Development bool   // console output at debug level
}

// New creates a logger: human-readable at debug level in development,
// structured JSON at info level otherwise.
func New(cfg Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	zcfg.DisableStacktrace = true

	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Service != "" {
		l = l.With(zap.String("service", cfg.Service))
	}
	return l, nil
}

// WithSession returns l annotated with the session id, or l itself when the
// id is empty.
func WithSession(l *zap.Logger, id domain.SessionID) *zap.Logger {
	if id == "" {
		return l
	}
	return l.With(zap.String("session_id", id.String()))
}

// Security logs a security-relevant event at warn level with a marker field.
func Security(l *zap.Logger, msg string, fields ...zap.Field) {
	l.Warn(msg, append(fields, zap.Bool("security_event", true))...)
}
