// Package commands defines the mugen CLI and wires dependencies for subcommands.
//
// Commands
//
//   - handshake    Establish a security session and print its id
//   - seal         Establish a session and print the envelope for a JSON value
//   - echo         Send a JSON value through the peer's /echo endpoint
//   - fingerprint  Print the fingerprint of a PEM public key
//
// # Implementation
//
// The root command loads configuration from .env and the environment, applies
// flag overrides and builds the client wiring before any subcommand runs.
// Each command gets a context that is cancelled on SIGINT.
package commands
