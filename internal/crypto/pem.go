package crypto

import (
	"fmt"
	"strings"
	"unicode"

	"mugen/internal/domain"
)

const (
	pemHeader  = "-----BEGIN PUBLIC KEY-----"
	pemFooter  = "-----END PUBLIC KEY-----"
	pemLineLen = 64
)

// DERToPEM wraps a DER-encoded public key in a PUBLIC KEY envelope.
//
// The body is split into 64-character lines, each terminated by a newline.
// No newline follows the footer; the browser client emits the same bytes.
func DERToPEM(der []byte) string {
	b64 := BufferToBase64(der)

	var sb strings.Builder
	sb.Grow(len(pemHeader) + len(pemFooter) + len(b64) + len(b64)/pemLineLen + 2)
	sb.WriteString(pemHeader)
	sb.WriteByte('\n')
	for i := 0; i < len(b64); i += pemLineLen {
		end := min(i+pemLineLen, len(b64))
		sb.WriteString(b64[i:end])
		sb.WriteByte('\n')
	}
	sb.WriteString(pemFooter)
	return sb.String()
}

// PEMToDER strips the PUBLIC KEY markers and all whitespace, then decodes
// what remains.
func PEMToDER(pem string) ([]byte, error) {
	body := strings.ReplaceAll(pem, pemHeader, "")
	body = strings.ReplaceAll(body, pemFooter, "")
	body = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty PEM body", domain.ErrFormat)
	}
	der, err := Base64ToBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	return der, nil
}
