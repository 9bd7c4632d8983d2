package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"mugen/internal/app"
	"mugen/internal/logging"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "handshaked:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("handshaked", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address (env LISTEN_ADDR)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle session lifetime (env SESSION_TTL)")
	fs.DurationVar(&cfg.MaxPayloadAge, "max-payload-age", cfg.MaxPayloadAge, "reject older payloads; 0 disables (env MAX_PAYLOAD_AGE)")
	fs.BoolVar(&cfg.Development, "dev", cfg.Development, "human-readable debug logging (env DEVELOPMENT)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := logging.New(logging.Config{Service: "handshaked", Development: cfg.Development})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.NewServer(cfg, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("handshake peer listening",
			zap.String("addr", cfg.ListenAddr),
			zap.Duration("session_ttl", cfg.SessionTTL),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
