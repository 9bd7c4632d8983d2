package envelope

import (
	"bytes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"mugen/internal/crypto"
	"mugen/internal/domain"
)

// Seal wraps data with now's millisecond timestamp, encodes it as JSON and
// encrypts it under a fresh IV.
func Seal(aead cipher.AEAD, data any, now time.Time) (domain.Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("encode data: %w", err)
	}
	plaintext, err := json.Marshal(domain.Payload{
		Data:      raw,
		Timestamp: now.UnixMilli(),
	})
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("encode payload: %w", err)
	}

	iv, ciphertext, err := crypto.Seal(aead, plaintext)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{
		IV:      crypto.BufferToBase64(iv),
		Content: crypto.BufferToBase64(ciphertext),
	}, nil
}

// Open decrypts env and validates the payload wrapper.
func Open(aead cipher.AEAD, env domain.Envelope) (domain.Payload, error) {
	iv, err := crypto.Base64ToBytes(env.IV)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("iv: %w", err)
	}
	ciphertext, err := crypto.Base64ToBytes(env.Content)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("content: %w", err)
	}

	plaintext, err := crypto.Open(aead, iv, ciphertext)
	if err != nil {
		return domain.Payload{}, err
	}
	return decodePayload(plaintext)
}

func decodePayload(plaintext []byte) (domain.Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return domain.Payload{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	// A JSON null decodes into a nil map without error.
	if fields == nil {
		return domain.Payload{}, domain.ErrMalformedPayload
	}
	data, ok := fields["data"]
	if !ok {
		return domain.Payload{}, domain.ErrMalformedPayload
	}
	rawTS, ok := fields["timestamp"]
	if !ok {
		return domain.Payload{}, domain.ErrMalformedPayload
	}

	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("%w: timestamp: %v", domain.ErrMalformedPayload, err)
	}
	return domain.Payload{Data: data, Timestamp: ts}, nil
}

// parseTimestamp accepts any JSON number; peers that emit fractional
// milliseconds are truncated.
func parseTimestamp(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, err
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("out of range: %s", n)
	}
	return int64(f), nil
}

// CheckFreshness rejects payloads whose timestamp is more than maxAge away
// from now in either direction. maxAge <= 0 accepts any timestamp.
func CheckFreshness(p domain.Payload, now time.Time, maxAge time.Duration) error {
	if maxAge <= 0 {
		return nil
	}
	skew := now.Sub(time.UnixMilli(p.Timestamp))
	if skew < 0 {
		skew = -skew
	}
	if skew > maxAge {
		return fmt.Errorf("%w: skew %s exceeds %s", domain.ErrStalePayload, skew, maxAge)
	}
	return nil
}
