package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"xchanger/internal/domain/model"
	"xchanger/internal/domain/ports"
	"xchanger/internal/metrics"
	"xchanger/pkg/logger"
)

type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Supported is attached to fetch errors as a hint about valid codes.
	Supported []model.Currency
}

// HTTPFetcher retrieves converter pages, consulting the response cache
// first. Identical concurrent requests share one network round trip.
type HTTPFetcher struct {
	cache     ports.ResponseCache
	proxies   ports.ProxyValidator
	opts      Options
	log       *logger.Logger
	metrics   *metrics.Metrics
	group     singleflight.Group
	mutex     sync.Mutex
	clients   map[string]*http.Client
	validated map[string]bool
}

func NewHTTPFetcher(cache ports.ResponseCache, proxies ports.ProxyValidator, opts Options, log *logger.Logger, m *metrics.Metrics) *HTTPFetcher {
	return &HTTPFetcher{
		cache:     cache,
		proxies:   proxies,
		opts:      opts,
		log:       log,
		metrics:   m,
		clients:   make(map[string]*http.Client),
		validated: make(map[string]bool),
	}
}

// Fetch returns the page body for url. A caller that gives up only abandons
// its own wait: a shared round trip keeps running for the other callers.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, proxy string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, ok, err := f.cache.Get(ctx, url)
	switch {
	case err != nil:
		f.metrics.CacheLookup("error")
		f.log.Warn("Response cache lookup failed", "url", url, "error", err)
	case ok:
		f.metrics.CacheLookup("hit")
		return body, nil
	default:
		f.metrics.CacheLookup("miss")
	}

	detached := context.WithoutCancel(ctx)
	ch := f.group.DoChan(proxy+" "+url, func() (interface{}, error) {
		return f.fetch(detached, url, proxy)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			f.log.Debug("Shared in-flight fetch", "url", url)
		}
		return res.Val.(string), nil
	}
}

func (f *HTTPFetcher) fetch(ctx context.Context, url, proxy string) (string, error) {
	if err := f.ensureProxy(ctx, proxy); err != nil {
		return "", err
	}

	client, err := f.client(proxy)
	if err != nil {
		return "", &model.ProxyError{Proxy: redact(proxy), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	f.log.Debug("Fetching page", "url", url)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		f.metrics.ObserveFetch("error", time.Since(start).Seconds())
		return "", &model.FetchError{URL: url, Err: err, Supported: f.opts.Supported}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.metrics.ObserveFetch("bad_status", time.Since(start).Seconds())
		return "", &model.FetchError{URL: url, StatusCode: resp.StatusCode, Supported: f.opts.Supported}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.metrics.ObserveFetch("error", time.Since(start).Seconds())
		return "", &model.FetchError{URL: url, Err: err, Supported: f.opts.Supported}
	}
	f.metrics.ObserveFetch("ok", time.Since(start).Seconds())

	body := string(data)
	if err := f.cache.Set(ctx, url, body); err != nil {
		f.log.Warn("Failed to cache response", "url", url, "error", err)
	}

	return body, nil
}

// ensureProxy validates proxy once per fetcher. Reachability does not change
// within a batch, so later fetches skip the extra round trip.
func (f *HTTPFetcher) ensureProxy(ctx context.Context, proxy string) error {
	if proxy == "" || f.proxies == nil {
		return nil
	}

	f.mutex.Lock()
	done := f.validated[proxy]
	f.mutex.Unlock()
	if done {
		return nil
	}

	if err := f.proxies.Validate(ctx, proxy); err != nil {
		return err
	}

	f.mutex.Lock()
	f.validated[proxy] = true
	f.mutex.Unlock()
	return nil
}

func (f *HTTPFetcher) client(proxy string) (*http.Client, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if c, ok := f.clients[proxy]; ok {
		return c, nil
	}

	c, err := newClient(proxy, f.opts.Timeout)
	if err != nil {
		return nil, err
	}
	f.clients[proxy] = c
	return c, nil
}
