package types

import "encoding/json"

// Envelope is the wire format of one encrypted payload.
//
// IV decodes to 12 bytes; Content is the AES-GCM ciphertext with the tag
// appended. Both are standard base64.
type Envelope struct {
	IV      string `json:"iv"`
	Content string `json:"content"`
}

// Payload is the plaintext wrapper that is actually sealed into an Envelope.
type Payload struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // milliseconds since epoch
}
