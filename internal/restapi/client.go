// Package restapi is the HTTP client for the clinic backend API. The
// dashboard holds no data of its own; every page is a thin view over these
// endpoints, authenticated with the bearer token carried in the request
// context.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clinic-admin/internal/config"
	"clinic-admin/internal/domain"
)

// Client talks to the clinic API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client from the resolved config.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.APITimeout},
	}
}

// NewWithBase builds a client against an explicit base URL (tests, CLI).
func NewWithBase(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues one request. The bearer token, when present in ctx, is attached
// as the Authorization header. Non-2xx responses are mapped to typed domain
// errors by the caller via checkStatus.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := domain.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrUnavailable("clinic API unreachable: %v", err)
	}
	return resp, nil
}

// checkStatus drains the response and maps non-2xx statuses onto the domain
// error taxonomy. On success it returns the body bytes.
func checkStatus(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, domain.ErrUnavailable("read response: %v", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	detail := errorDetail(body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized("%s", orDefault(detail, "session expired or invalid"))
	case http.StatusForbidden:
		return nil, domain.ErrAccessDenied("%s", orDefault(detail, "permission denied"))
	case http.StatusNotFound:
		return nil, domain.ErrNotFound("%s", orDefault(detail, "resource not found"))
	case http.StatusConflict:
		return nil, domain.ErrConflict("%s", orDefault(detail, "resource is referenced by other records"))
	case http.StatusBadRequest:
		return nil, validationError(body, detail)
	default:
		if resp.StatusCode >= 500 {
			return nil, domain.ErrUnavailable("clinic API returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("clinic API: unexpected HTTP %d: %s", resp.StatusCode, detail)
	}
}

// errorDetail pulls a human message out of common backend error shapes.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		for _, s := range []string{parsed.Detail, parsed.Message, parsed.Error} {
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// validationError decodes a 400 body. Field errors arrive as a map of field
// name to message list; anything unparseable falls back to a plain message.
func validationError(body []byte, detail string) error {
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		// Some backends mix scalar keys into the map; a failed decode above
		// already rules that out.
		delete(fields, "detail")
		if len(fields) > 0 {
			return &domain.ValidationError{Message: "validation failed", Fields: fields}
		}
	}
	return domain.ErrValidation("%s", orDefault(detail, "invalid input"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Access string `json:"access"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, loginName, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login/", map[string]string{
		"loginName": loginName,
		"password":  password,
	})
	if err != nil {
		return "", err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return "", err
	}
	var lr LoginResult
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", fmt.Errorf("parse login response: %w", err)
	}
	if lr.Access == "" {
		return "", domain.ErrUnavailable("login response carried no token")
	}
	return lr.Access, nil
}

// Me fetches the authenticated principal with its permission set.
func (c *Client) Me(ctx context.Context) (domain.Principal, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me/", nil)
	if err != nil {
		return domain.Principal{}, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return domain.Principal{}, err
	}
	var p domain.Principal
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Principal{}, fmt.Errorf("parse principal: %w", err)
	}
	return p, nil
}

// ChangePassword updates the caller's own password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/auth/change-password/", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	if err != nil {
		return err
	}
	_, err = checkStatus(resp)
	return err
}
