package app

import (
	"go.uber.org/zap"

	"mugen/internal/logging"
)

// App is a client ready to talk to the backend.
type App struct {
	Config Config
	Log    *zap.Logger
	*Wire
}

// New builds the logger and the client wiring for cfg.
func New(cfg Config, service string) (*App, error) {
	log, err := logging.New(logging.Config{Service: service, Development: cfg.Development})
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log, Wire: NewWire(cfg, log)}, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Log.Sync()
}
