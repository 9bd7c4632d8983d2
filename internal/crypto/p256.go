package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"fmt"

	"mugen/internal/domain"
)

// GenerateP256 returns a fresh ephemeral ECDH key pair on P-256.
func GenerateP256() (*ecdh.PrivateKey, error) {
	return ecdh.P256().GenerateKey(rand.Reader)
}

// MarshalPublicKey exports pub as SPKI/DER and wraps it as PEM.
func MarshalPublicKey(pub *ecdh.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("export public key: %w", err)
	}
	return DERToPEM(der), nil
}

// ParsePublicKey imports a PEM-wrapped SPKI P-256 public key for ECDH.
func ParsePublicKey(pem string) (*ecdh.PublicKey, error) {
	der, err := PEMToDER(pem)
	if err != nil {
		return nil, err
	}
	return parseDER(der)
}

func parseDER(der []byte) (*ecdh.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		if k.Curve != elliptic.P256() {
			return nil, fmt.Errorf("%w: curve %s is not P-256", domain.ErrFormat, k.Curve.Params().Name)
		}
		pub, err := k.ECDH()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
		}
		return pub, nil
	case *ecdh.PublicKey:
		if k.Curve() != ecdh.P256() {
			return nil, fmt.Errorf("%w: not a P-256 key", domain.ErrFormat)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unexpected key type %T", domain.ErrFormat, key)
	}
}

// PublicKeyFingerprint returns the fingerprint of pub's SPKI encoding.
func PublicKeyFingerprint(pub *ecdh.PublicKey) domain.Fingerprint {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return ""
	}
	return Fingerprint(der)
}

// SharedSecret computes the 32-byte raw ECDH secret between priv and pub.
func SharedSecret(priv *ecdh.PrivateKey, pub *ecdh.PublicKey) ([]byte, error) {
	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("ecdh: %w", err)
	}
	return secret, nil
}
