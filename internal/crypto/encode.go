package crypto

import (
	"encoding/base64"
	"fmt"

	"mugen/internal/domain"
)

// BufferToBase64 returns standard base64 encoding without newlines.
func BufferToBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// Base64ToBytes decodes standard base64.
func Base64ToBytes(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return b, nil
}
