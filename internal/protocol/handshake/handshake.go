package handshake

import (
	"context"
	"crypto/ecdh"
	"errors"
	"fmt"

	"mugen/internal/crypto"
	"mugen/internal/domain"
	"mugen/internal/util/memzero"
)

// Result is the outcome of one successful handshake.
type Result struct {
	SessionID       domain.SessionID
	Key             []byte // 32-byte AES-256-GCM key; callers should wipe it once imported
	PeerFingerprint domain.Fingerprint
}

// Execute runs one handshake against baseURL through transport.
//
// The steps run strictly in order; each consumes the previous step's output.
// No retries are attempted here.
func Execute(
	ctx context.Context,
	transport domain.HandshakeTransport,
	baseURL string,
) (Result, error) {
	// Ephemeral key pair, discarded when we return.
	priv, err := crypto.GenerateP256()
	if err != nil {
		return Result{}, fail("generate key pair", err)
	}

	clientPEM, err := crypto.MarshalPublicKey(priv.PublicKey())
	if err != nil {
		return Result{}, fail("export public key", err)
	}

	resp, err := transport.Handshake(ctx, baseURL, domain.HandshakeRequest{PublicKey: clientPEM})
	if err != nil {
		return Result{}, fail("exchange", err)
	}
	if resp.SessionID == "" {
		return Result{}, fail("response", errors.New("missing session_id"))
	}
	if resp.PublicKey == "" {
		return Result{}, fail("response", errors.New("missing public_key"))
	}

	peerPub, err := crypto.ParsePublicKey(resp.PublicKey)
	if err != nil {
		return Result{}, fail("import peer key", err)
	}

	key, err := derive(priv, peerPub)
	if err != nil {
		return Result{}, fail("derive session key", err)
	}

	return Result{
		SessionID:       resp.SessionID,
		Key:             key,
		PeerFingerprint: crypto.PublicKeyFingerprint(peerPub),
	}, nil
}

// Respond performs the peer half of the exchange for a client PEM key.
// It returns our PEM public key and the session key both sides now share.
func Respond(clientPEM string) (serverPEM string, key []byte, err error) {
	clientPub, err := crypto.ParsePublicKey(clientPEM)
	if err != nil {
		return "", nil, err
	}
	priv, err := crypto.GenerateP256()
	if err != nil {
		return "", nil, err
	}
	serverPEM, err = crypto.MarshalPublicKey(priv.PublicKey())
	if err != nil {
		return "", nil, err
	}
	key, err = derive(priv, clientPub)
	if err != nil {
		return "", nil, err
	}
	return serverPEM, key, nil
}

func derive(priv *ecdh.PrivateKey, pub *ecdh.PublicKey) ([]byte, error) {
	secret, err := crypto.SharedSecret(priv, pub)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(secret)
	return crypto.DeriveSessionKey(secret)
}

func fail(step string, err error) error {
	if errors.Is(err, domain.ErrHandshake) {
		return fmt.Errorf("%s: %w", step, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrHandshake, step, err)
}
