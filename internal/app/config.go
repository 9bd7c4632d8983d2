package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"mugen/internal/server"
	"mugen/internal/services/session"
)

const (
	DefaultAPIBaseURL = "http://localhost:5000/api"
	DefaultListenAddr = ":5000"
)

// Config holds runtime wiring options for the client and the peer.
type Config struct {
	APIBaseURL       string        // backend base URL, e.g. http://localhost:5000/api
	HandshakeTimeout time.Duration // bound on one handshake attempt
	HandshakeRetries uint64        // extra attempts EnsureSession makes
	MaxPayloadAge    time.Duration // 0 accepts any payload timestamp
	ListenAddr       string        // peer listen address
	SessionTTL       time.Duration // peer idle session lifetime
	Development      bool          // human-readable debug logging
	HTTP             *http.Client  // optional; built from HandshakeTimeout when nil
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:       DefaultAPIBaseURL,
		HandshakeTimeout: session.DefaultHandshakeTimeout,
		ListenAddr:       DefaultListenAddr,
		SessionTTL:       server.DefaultSessionTTL,
	}
}

// LoadConfig reads the given dotenv files (".env" when none are named) and
// then the process environment. A missing dotenv file is not an error, and
// variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	def := DefaultConfig()
	cfg := Config{
		APIBaseURL:  GetEnvOrDefault("API_BASE_URL", def.APIBaseURL),
		ListenAddr:  GetEnvOrDefault("LISTEN_ADDR", def.ListenAddr),
		Development: GetEnvOrDefault("DEVELOPMENT", "false") == "true",
	}

	var err error
	if cfg.HandshakeTimeout, err = getEnvDuration("HANDSHAKE_TIMEOUT", def.HandshakeTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MaxPayloadAge, err = getEnvDuration("MAX_PAYLOAD_AGE", def.MaxPayloadAge); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", def.SessionTTL); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv("HANDSHAKE_RETRIES"); ok && v != "" {
		n, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return Config{}, fmt.Errorf("HANDSHAKE_RETRIES: %w", perr)
		}
		cfg.HandshakeRetries = n
	}
	return cfg, nil
}

// GetEnvOrDefault returns the value of key, or defaultValue when it is unset
// or empty.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, value)
	}
	return d, nil
}
