package crypto_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mugen/internal/crypto"
	"mugen/internal/domain"
)

func TestBase64_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(rt, "in")
		out, err := crypto.Base64ToBytes(crypto.BufferToBase64(in))
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(in, out) {
			rt.Fatalf("round trip mismatch")
		}
	})
}

func TestBase64_LargeBuffer(t *testing.T) {
	in := bytes.Repeat([]byte{0xAB, 0x01, 0xFF}, 300_000)
	out, err := crypto.Base64ToBytes(crypto.BufferToBase64(in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestBase64ToBytes_Invalid(t *testing.T) {
	for _, in := range []string{"***", "abc", "YWJj\x00"} {
		_, err := crypto.Base64ToBytes(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, domain.ErrDecode), in)
	}
}

func TestDERToPEM_Layout(t *testing.T) {
	der := bytes.Repeat([]byte{7}, 91) // 124 base64 chars: one full line and one partial
	pem := crypto.DERToPEM(der)

	lines := strings.Split(pem, "\n")
	require.Equal(t, "-----BEGIN PUBLIC KEY-----", lines[0])
	require.Len(t, lines[1], 64)
	require.Len(t, lines[2], 60)
	require.Equal(t, "-----END PUBLIC KEY-----", lines[3])
	require.Len(t, lines, 4)
	require.False(t, strings.HasSuffix(pem, "\n"))
}

func TestPEMToDER_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		der := rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(rt, "der")
		got, err := crypto.PEMToDER(crypto.DERToPEM(der))
		if err != nil {
			rt.Fatalf("PEMToDER: %v", err)
		}
		if !bytes.Equal(der, got) {
			rt.Fatalf("round trip mismatch")
		}
	})
}

func TestPEMToDER_ToleratesCRLFAndTrailingNewline(t *testing.T) {
	der := []byte("some der bytes that are long enough to wrap across more than one line of pem")
	pem := strings.ReplaceAll(crypto.DERToPEM(der), "\n", "\r\n") + "\r\n"

	got, err := crypto.PEMToDER(pem)
	require.NoError(t, err)
	require.Equal(t, der, got)
}

func TestPEMToDER_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"-----BEGIN PUBLIC KEY-----\n-----END PUBLIC KEY-----",
		"-----BEGIN PUBLIC KEY-----\n!!!!\n-----END PUBLIC KEY-----",
	} {
		_, err := crypto.PEMToDER(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, domain.ErrFormat), in)
	}
}
