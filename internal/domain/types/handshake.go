package types

// HandshakeRequest is the body the client posts to {base}/handshake.
type HandshakeRequest struct {
	PublicKey string `json:"public_key"` // client ECDH public key, PEM
}

// HandshakeResponse is what the peer answers with on success.
type HandshakeResponse struct {
	SessionID SessionID `json:"session_id"`
	PublicKey string    `json:"public_key"` // peer ECDH public key, PEM
}

// SessionHeader names the HTTP header that carries the session id on sealed
// requests.
const SessionHeader = "X-Session-ID"
