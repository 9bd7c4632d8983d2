package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mugen/internal/api"
	"mugen/internal/domain"
)

func TestHandshake_PostsJSON(t *testing.T) {
	var gotMethod, gotPath, gotCT string
	var gotReq domain.HandshakeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotCT = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]string{"session_id": "sess-123", "public_key": "PEM"})
	}))
	defer srv.Close()

	c := api.NewHTTP(srv.URL+"/api", srv.Client())
	resp, err := c.Handshake(context.Background(), srv.URL+"/api/", domain.HandshakeRequest{PublicKey: "client-pem"})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/handshake", gotPath)
	require.Equal(t, "application/json", gotCT)
	require.Equal(t, "client-pem", gotReq.PublicKey)
	require.Equal(t, domain.SessionID("sess-123"), resp.SessionID)
	require.Equal(t, "PEM", resp.PublicKey)
}

func TestHandshake_EmptyBaseFallsBack(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"session_id":"s","public_key":"k"}`))
	}))
	defer srv.Close()

	_, err := api.NewHTTP(srv.URL+"/v1", nil).Handshake(context.Background(), "", domain.HandshakeRequest{})
	require.NoError(t, err)
	require.Equal(t, "/v1/handshake", gotPath)
}

func TestHandshake_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := api.NewHTTP(srv.URL, srv.Client()).Handshake(context.Background(), srv.URL, domain.HandshakeRequest{PublicKey: "k"})
	require.ErrorIs(t, err, domain.ErrHandshake)

	var he *domain.HandshakeError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusInternalServerError, he.StatusCode)
	require.ErrorContains(t, err, "boom")
}

func TestHandshake_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := api.NewHTTP(srv.URL, srv.Client()).Handshake(context.Background(), srv.URL, domain.HandshakeRequest{})
	require.Error(t, err)
}

func TestHandshake_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := api.NewHTTP(srv.URL, srv.Client()).Handshake(ctx, srv.URL, domain.HandshakeRequest{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPostSealed(t *testing.T) {
	var gotPath, gotSession string
	var gotEnv domain.Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotSession = r.URL.Path, r.Header.Get(domain.SessionHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotEnv)
		_ = json.NewEncoder(w).Encode(domain.Envelope{IV: "b3V0", Content: "cmVwbHk="})
	}))
	defer srv.Close()

	c := api.NewHTTP(srv.URL+"/api", srv.Client())
	out, err := c.PostSealed(context.Background(), "/echo", "sess-1", domain.Envelope{IV: "aXY=", Content: "Y3Q="})
	require.NoError(t, err)
	require.Equal(t, "/api/echo", gotPath)
	require.Equal(t, "sess-1", gotSession)
	require.Equal(t, domain.Envelope{IV: "aXY=", Content: "Y3Q="}, gotEnv)
	require.Equal(t, domain.Envelope{IV: "b3V0", Content: "cmVwbHk="}, out)
}

func TestPostSealed_StatusErrors(t *testing.T) {
	for _, tc := range []struct {
		status   int
		rejected bool
	}{
		{http.StatusUnauthorized, true},
		{http.StatusNotFound, true},
		{http.StatusGone, true},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		_, err := api.NewHTTP(srv.URL, srv.Client()).PostSealed(context.Background(), "/echo", "s", domain.Envelope{})
		srv.Close()

		var se *domain.StatusError
		require.True(t, errors.As(err, &se), "status %d", tc.status)
		require.Equal(t, tc.status, se.StatusCode)
		require.Equal(t, tc.rejected, errors.Is(err, domain.ErrSessionRejected), "status %d", tc.status)
	}
}
