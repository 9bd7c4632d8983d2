package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode reports malformed base64 input.
	ErrDecode = errors.New("invalid base64")
	// ErrFormat reports a PEM/SPKI envelope that carries no usable key.
	ErrFormat = errors.New("invalid public key format")
	// ErrHandshake reports a failed or incomplete handshake round trip.
	ErrHandshake = errors.New("handshake failed")
	// ErrNoSession is returned by encrypt/decrypt before a handshake succeeded.
	ErrNoSession = errors.New("no session key")
	// ErrDecrypt reports an AES-GCM authentication failure.
	ErrDecrypt = errors.New("decryption failed")
	// ErrMalformedPayload reports a decrypted plaintext without the
	// {data, timestamp} wrapper.
	ErrMalformedPayload = errors.New("invalid payload format: missing timestamp or data")
	// ErrStalePayload reports a payload timestamp outside the accepted window.
	ErrStalePayload = errors.New("payload timestamp outside accepted window")
	// ErrSessionRejected reports that the peer no longer knows the session.
	ErrSessionRejected = errors.New("session rejected by peer")
)

// HandshakeError carries the HTTP status of a rejected handshake.
type HandshakeError struct {
	StatusCode int
	Err        error
}

func (e *HandshakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("handshake failed: %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("handshake failed: %d", e.StatusCode)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// Is makes every HandshakeError match ErrHandshake.
func (e *HandshakeError) Is(target error) bool { return target == ErrHandshake }

// StatusError reports a non-2xx answer on a sealed call.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is maps statuses that mean "unknown or expired session" to ErrSessionRejected.
func (e *StatusError) Is(target error) bool {
	if target != ErrSessionRejected {
		return false
	}
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusNotFound, http.StatusGone:
		return true
	}
	return false
}
