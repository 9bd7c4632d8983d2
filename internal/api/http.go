package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mugen/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

type HTTP struct {
	Base string
	HTTP *http.Client
}

func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client}
}

// Handshake posts req to baseURL + "/handshake". An empty baseURL falls back
// to Base.
func (c *HTTP) Handshake(ctx context.Context, baseURL string, req domain.HandshakeRequest) (domain.HandshakeResponse, error) {
	if baseURL == "" {
		baseURL = c.Base
	}
	u := strings.TrimRight(baseURL, "/") + "/handshake"

	resp, err := c.post(ctx, u, req, nil)
	if err != nil {
		return domain.HandshakeResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.HandshakeResponse{}, &domain.HandshakeError{StatusCode: resp.StatusCode, Err: bodyError(resp)}
	}

	var out domain.HandshakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.HandshakeResponse{}, fmt.Errorf("decode handshake response: %w", err)
	}
	return out, nil
}

// PostSealed posts env to Base + path under sessionID and returns the sealed
// answer.
func (c *HTTP) PostSealed(ctx context.Context, path string, sessionID domain.SessionID, env domain.Envelope) (domain.Envelope, error) {
	u := c.Base + path
	resp, err := c.post(ctx, u, env, http.Header{domain.SessionHeader: {sessionID.String()}})
	if err != nil {
		return domain.Envelope{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Envelope{}, &domain.StatusError{Method: http.MethodPost, URL: u, StatusCode: resp.StatusCode}
	}

	var out domain.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Envelope{}, fmt.Errorf("decode sealed response: %w", err)
	}
	return out, nil
}

func (c *HTTP) post(ctx context.Context, u string, in any, hdr http.Header) (*http.Response, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, buf)
	if err != nil {
		return nil, err
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.HTTP.Do(req)
}

// bodyError returns the trimmed start of a failed response body, or nil.
func bodyError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

var (
	_ domain.HandshakeTransport = (*HTTP)(nil)
	_ domain.SealedTransport    = (*HTTP)(nil)
)
