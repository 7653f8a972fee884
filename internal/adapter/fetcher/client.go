package fetcher

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// newClient returns an HTTP client with the given timeout, routed through
// proxy when one is set.
func newClient(proxy string, timeout time.Duration) (*http.Client, error) {
	if proxy == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}
	if proxyURL.Scheme == "" || proxyURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL: scheme and host are required")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(proxyURL)

	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

// redact hides proxy credentials in logs and errors.
func redact(proxy string) string {
	u, err := url.Parse(proxy)
	if err != nil {
		return "<invalid proxy>"
	}
	return u.Redacted()
}
