// Package app loads configuration and wires dependencies for the binaries.
//
// LoadConfig reads an optional .env file and the process environment.
// NewWire builds the HTTP transport, the session manager and the secure
// client from a Config; NewServer builds the reference peer. App bundles a
// logger with the client wiring for the CLI.
//
// # Environment
//
//	API_BASE_URL       backend base URL (default http://localhost:5000/api)
//	HANDSHAKE_TIMEOUT  bound on one handshake attempt (default 10s)
//	HANDSHAKE_RETRIES  extra handshake attempts with backoff (default 0)
//	MAX_PAYLOAD_AGE    reject payloads older than this; 0 disables (default 0)
//	LISTEN_ADDR        peer listen address (default :5000)
//	SESSION_TTL        peer idle session lifetime (default 30m)
//	DEVELOPMENT        "true" for human-readable debug logs
package app
