// Package http builds the HTTP client used for outbound portal calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
// http.DefaultClient has no timeout, so outbound calls always go through a
// client built here; the overall request timeout comes from the caller, and
// the transport bounds dialing and TLS setup separately so a black-holed
// endpoint fails fast enough for the fallback endpoint to still be useful.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
