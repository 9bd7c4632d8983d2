// Package main runs the reference handshake peer used by mugen during
// development and tests. It answers ECDH handshakes and echoes sealed
// payloads back under the same session.
//
// HTTP API
//
//	POST /handshake {"public_key": PEM}
//	    Generate an ephemeral P-256 key, derive the session key and answer
//	    with {"session_id", "public_key"}.
//
//	POST /echo {"iv", "content"}   (header X-Session-ID)
//	    Open the envelope and answer with one sealing {"echo": <data>}.
//
// Behaviour
//
//   - Sessions are held in memory with a sliding TTL and lost on exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - An access log records method, path, remote, status, bytes and duration
//     for each request.
//   - The default listen address is :5000, so the client defaults line up.
//   - SIGINT or SIGTERM drains in-flight requests before exiting.
package main
