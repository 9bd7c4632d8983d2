package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mugen/internal/logging"
)

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		l, err := logging.New(logging.Config{Service: "test", Development: dev})
		require.NoError(t, err)
		require.NotNil(t, l)
		require.Equal(t, dev, l.Core().Enabled(zap.DebugLevel))
	}
}

func TestWithSessionAndSecurity(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)

	require.Same(t, l, logging.WithSession(l, ""))

	logging.Security(logging.WithSession(l, "sess-1"), "decryption failed")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "sess-1", fields["session_id"])
	require.Equal(t, true, fields["security_event"])
	require.Equal(t, zap.WarnLevel, entries[0].Level)
}
