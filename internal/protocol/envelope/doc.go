// Package envelope seals JSON values into the {iv, content} wire envelope and
// opens them again.
//
// The sealed plaintext is always the wrapper {"data": <value>, "timestamp":
// <ms since epoch>}. Open refuses plaintexts that lack either field, so a
// peer speaking a different payload shape is caught even when the AEAD check
// passes.
package envelope
