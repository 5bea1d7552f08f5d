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

	"auction-client/internal/auctionerrors"
	"auction-client/internal/models"
	"auction-client/utils"
)

const (
	defaultCSRFCookie = "csrftoken"
	defaultCSRFHeader = "X-CSRFToken"
	requestIDHeader   = "X-Request-ID"
	contentTypeJSON   = "application/json"
)

// Requester is the HTTP access surface the state containers depend on.
// out, when non-nil, receives the decoded JSON response body.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, payload any, out any) error
	Put(ctx context.Context, path string, payload any, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Config configures a Client.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8000".
	BaseURL string

	// HTTPClient defaults to a client with no timeout. A cookie jar is
	// attached when the client has none.
	HTTPClient *http.Client

	CSRFCookieName string
	CSRFHeaderName string
	// SessionCookieName is used by SetSession. Defaults to "sessionid".
	SessionCookieName string
}

// Client performs API round trips against the backend. Cookies (session
// and anti-forgery) are always sent.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	csrfCookie    string
	csrfHeader    string
	sessionCookie string
}

var _ Requester = (*Client)(nil)

// NewClient creates a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must be absolute", cfg.BaseURL)
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("api: create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		baseURL:       base,
		httpClient:    httpClient,
		csrfCookie:    fallback(cfg.CSRFCookieName, defaultCSRFCookie),
		csrfHeader:    fallback(cfg.CSRFHeaderName, defaultCSRFHeader),
		sessionCookie: fallback(cfg.SessionCookieName, "sessionid"),
	}, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetSession seeds the cookie jar with an existing session and anti-forgery
// token. Empty values are skipped.
func (c *Client) SetSession(sessionID, csrfToken string) {
	var cookies []*http.Cookie
	if sessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: c.sessionCookie, Value: sessionID, Path: "/"})
	}
	if csrfToken != "" {
		cookies = append(cookies, &http.Cookie{Name: c.csrfCookie, Value: csrfToken, Path: "/"})
	}
	if len(cookies) > 0 {
		c.httpClient.Jar.SetCookies(c.baseURL, cookies)
	}
}

// CSRFToken returns the anti-forgery token currently held in the cookie jar,
// or "" when none was issued.
func (c *Client) CSRFToken() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == c.csrfCookie {
			return cookie.Value
		}
	}
	return ""
}

// PrimeCSRF asks the backend to issue the anti-forgery cookie.
func (c *Client) PrimeCSRF(ctx context.Context) error {
	return c.Get(ctx, "/api/csrf/", nil)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, payload any, out any) error {
	return c.Do(ctx, http.MethodPost, path, payload, out)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, payload any, out any) error {
	return c.Do(ctx, http.MethodPut, path, payload, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do executes one request. Every failure, whether transport, status or
// decoding, is returned as *auctionerrors.RequestError.
func (c *Client) Do(ctx context.Context, method, path string, payload any, out any) error {
	body, contentType, err := encodeBody(payload)
	if err != nil {
		return &auctionerrors.RequestError{Message: fmt.Sprintf("encode request body: %v", err), Err: err}
	}

	target, err := utils.JoinURL(c.baseURL, path)
	if err != nil {
		return &auctionerrors.RequestError{Message: fmt.Sprintf("invalid request path %q", path), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return &auctionerrors.RequestError{Message: err.Error(), Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	requestID := utils.GenerateID()
	req.Header.Set(requestIDHeader, requestID)
	if isMutating(method) {
		req.Header.Set(c.csrfHeader, c.CSRFToken())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.Warn("api request failed", map[string]any{
			"method":     method,
			"path":       path,
			"request_id": requestID,
			"error":      err.Error(),
		})
		return &auctionerrors.RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	utils.Debug("api request", map[string]any{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"latency":    time.Since(start).String(),
		"request_id": requestID,
	})

	respBody, err := io.ReadAll(resp.Body)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if err != nil && ok {
		return &auctionerrors.RequestError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	if !ok {
		// an unreadable error body still yields the status fallback message
		reqErr := auctionerrors.NewRequestError(resp.StatusCode, errorMessage(respBody))
		utils.Warn("api request rejected", map[string]any{
			"method":     method,
			"path":       path,
			"status":     resp.StatusCode,
			"request_id": requestID,
			"error":      reqErr.Message,
		})
		return reqErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &auctionerrors.RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode response body: %v", err),
			Err:        err,
		}
	}
	return nil
}

// encodeBody picks multipart for *Form payloads and JSON for everything else.
func encodeBody(payload any) (io.Reader, string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		if p == nil {
			return nil, "", nil
		}
		return p.encode()
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}
}

// errorMessage extracts the "error" field of a JSON error body. It returns
// "" for anything unparseable so the caller falls back to the status message.
func errorMessage(body []byte) string {
	var parsed models.ErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
