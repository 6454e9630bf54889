// Package sso provides a client for the campus SSO portal service, which
// verifies a student id / password pair and returns the student's profile.
package sso

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
	"sejong_catch_backend/internal/feature/auth/usecase"
)

// Config holds configuration for the SSO portal client.
type Config struct {
	// BaseURL is the primary portal endpoint. Trailing slashes are ignored.
	BaseURL string
	// FallbackURL is tried after BaseURL on connectivity failures, but only
	// when explicitly configured and distinct from BaseURL.
	FallbackURL string
}

type sessionRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type sessionResponse struct {
	Success bool               `json:"success"`
	User    *entity.SSOProfile `json:"user"`
}

// Client resolves identities against an ordered list of portal endpoints.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that Client implements SSOResolver.
var _ usecase.SSOResolver = (*Client)(nil)

// NewClient creates a new portal client with the given configuration and HTTP
// client. The HTTP client's timeout bounds each individual attempt.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// candidates returns the endpoints to try, in priority order.
func (c *Client) candidates() []string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	fallback := strings.TrimRight(c.cfg.FallbackURL, "/")

	var urls []string
	if base != "" {
		urls = append(urls, base)
	}
	if fallback != "" && fallback != base {
		urls = append(urls, fallback)
	}
	return urls
}

// Resolve posts the credentials to each candidate endpoint in order.
//
// An explicit authentication rejection (HTTP 401 or a success=false payload)
// short-circuits the whole resolution. A connectivity failure advances to the
// next candidate while one remains; any other failure is final. A timed-out
// attempt counts as a connectivity failure and is never retried against the
// same endpoint.
func (c *Client) Resolve(ctx context.Context, studentID, password string) (*entity.SSOProfile, error) {
	urls := c.candidates()
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: portal base url is not configured", usecase.ErrSSOUnavailable)
	}

	payload, err := json.Marshal(sessionRequest{StudentID: studentID, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	var lastErr error
	for idx, baseURL := range urls {
		profile, err := c.attempt(ctx, baseURL, payload)
		if err == nil {
			return profile, nil
		}
		if errors.Is(err, usecase.ErrSSORejected) {
			return nil, err
		}
		if isConnectivityError(err) {
			lastErr = err
			if idx < len(urls)-1 {
				continue
			}
			break
		}
		// Server errors and malformed responses are final.
		return nil, fmt.Errorf("%w: %v", usecase.ErrSSOUnavailable, err)
	}

	return nil, fmt.Errorf("%w: %v", usecase.ErrSSOUnavailable, lastErr)
}

// attempt performs one session request against one endpoint.
func (c *Client) attempt(ctx context.Context, baseURL string, payload []byte) (*entity.SSOProfile, error) {
	url := baseURL + "/auth/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return nil, usecase.ErrSSORejected
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("sso portal http %d", res.StatusCode)
	}

	var body sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	// The payload carries its own success indicator; only an explicit true
	// counts as an authenticated session.
	if !body.Success {
		return nil, usecase.ErrSSORejected
	}
	if body.User == nil {
		return &entity.SSOProfile{}, nil
	}
	return body.User, nil
}

// isConnectivityError reports whether err is a network-level failure that
// justifies advancing to the next candidate endpoint.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
