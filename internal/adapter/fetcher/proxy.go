package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"xchanger/internal/domain/model"
	"xchanger/internal/metrics"
	"xchanger/pkg/logger"
)

// ProxyChecker verifies a proxy by asking an IP echo service, through the
// proxy, for the caller's public address.
type ProxyChecker struct {
	echoURL string
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewProxyChecker(echoURL string, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *ProxyChecker {
	return &ProxyChecker{
		echoURL: echoURL,
		timeout: timeout,
		log:     log,
		metrics: m,
	}
}

func (c *ProxyChecker) Validate(ctx context.Context, proxy string) error {
	_, err := c.Describe(ctx, proxy)
	return err
}

// Describe validates proxy and reports the public IP address seen through it.
func (c *ProxyChecker) Describe(ctx context.Context, proxy string) (string, error) {
	if proxy == "" {
		return "No proxy configured", nil
	}

	ip, err := c.check(ctx, proxy)
	c.metrics.ProxyCheck(err == nil)
	if err != nil {
		c.log.Warn("Proxy check failed", "proxy", redact(proxy), "error", err)
		return "", err
	}

	c.log.Debug("Proxy check passed", "proxy", redact(proxy), "ip", ip)
	return fmt.Sprintf("Your public IP address is %s", ip), nil
}

func (c *ProxyChecker) check(ctx context.Context, proxy string) (string, error) {
	client, err := newClient(proxy, c.timeout)
	if err != nil {
		return "", &model.ProxyError{Proxy: redact(proxy), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.echoURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &model.ProxyError{Proxy: redact(proxy), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.ProxyError{Proxy: redact(proxy), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.ProxyError{Proxy: redact(proxy), Err: err}
	}

	return parseIP(body), nil
}

// parseIP accepts both {"ip":"1.2.3.4"} and plain text answers.
func parseIP(body []byte) string {
	var echo struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(body, &echo); err == nil && echo.IP != "" {
		return echo.IP
	}
	return strings.TrimSpace(string(body))
}
