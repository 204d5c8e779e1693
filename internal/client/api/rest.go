package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/common"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

const refreshPath = "/users/refresh-token"

// authPaths are endpoints whose 401 is a credential rejection, not a session
// expiry. They must never trigger the refresh flow.
var authPaths = map[string]struct{}{
	"/users/login":           {},
	"/users/register":        {},
	"/users/change-password": {},
	refreshPath:              {},
}

// envelope is the backend's uniform response wrapper. On success, message is
// the payload object; on failure, message is a human-readable string.
type envelope struct {
	Message json.RawMessage `json:"message"`
}

// RESTClient is the concrete Client. The refresh credential is carried by an
// http-only cookie, so the underlying http.Client owns a cookie jar; this
// client never reads or writes the refresh credential directly.
type RESTClient struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     logging.Logger
}

// NewRESTClient builds a client rooted at baseURL (e.g.
// "http://localhost:8080/api/v1"). A timeout of zero keeps the http.Client
// default; timeouts surface as ErrUnavailable.
func NewRESTClient(baseURL string, timeout time.Duration, sess *session.Session, log logging.Logger) (*RESTClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		session: sess,
		log:     log.With("component", "api"),
	}, nil
}

// do performs one logical API call: marshal body, attach bearer token, send,
// decode the envelope into out. On a 401 for a refresh-eligible request it
// runs the refresh-and-retry cycle exactly once.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, query, body, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if _, isAuth := authPaths[path]; isAuth {
			return &CredentialError{Message: serverMessage(raw, "unauthorized")}
		}

		// Single transparent refresh, then resubmit the original request
		// once. The resubmission's outcome is returned as-is.
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, raw, err = c.send(ctx, method, path, query, body, true)
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, raw, out)
}

// send builds and executes a single HTTP request. Transport-level failures map
// to ErrUnavailable; the response body is drained and returned.
func (c *RESTClient) send(ctx context.Context, method, path string, query url.Values, body any, withToken bool) (*http.Response, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if withToken {
		if token := c.session.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "transport failure", "method", method, "path", path, "error", err)
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)
	return resp, raw, nil
}

// refresh issues the single refresh call. No access token is attached — the
// ambient refresh cookie authenticates it. On success the new token is stored;
// on any failure the stored token is cleared and ErrSessionExpired returned.
func (c *RESTClient) refresh(ctx context.Context) error {
	resp, raw, err := c.send(ctx, http.MethodPost, refreshPath, nil, struct{}{}, false)
	if err != nil {
		c.session.ClearToken()
		return fmt.Errorf("refresh: %w", ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.session.ClearToken()
		c.log.Info(ctx, "token refresh rejected", "status", resp.StatusCode)
		return fmt.Errorf("refresh: %w", ErrSessionExpired)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == nil {
		c.session.ClearToken()
		return fmt.Errorf("refresh: %w", ErrSessionExpired)
	}
	if err := json.Unmarshal(env.Message, &payload); err != nil || payload.AccessToken == "" {
		c.session.ClearToken()
		return fmt.Errorf("refresh: %w", ErrSessionExpired)
	}

	c.session.SetToken(payload.AccessToken)
	if exp, ok := c.session.ExpiresAt(); ok {
		c.log.Debug(ctx, "access token refreshed", "expires_at", exp)
	} else {
		c.log.Debug(ctx, "access token refreshed")
	}
	return nil
}

// decodeResponse maps a completed exchange to the error taxonomy, or decodes
// the success payload into out.
func decodeResponse(resp *http.Response, raw []byte, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(raw, "")}
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Message == nil {
		return nil
	}
	if err := json.Unmarshal(env.Message, out); err != nil {
		return fmt.Errorf("decode response payload: %w", err)
	}
	return nil
}

// serverMessage extracts the error envelope's message string, if any.
func serverMessage(raw []byte, fallback string) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}
