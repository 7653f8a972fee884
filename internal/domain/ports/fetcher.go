package ports

import (
	"context"
)

// PageFetcher returns the body of a successful GET of url, optionally sent
// through proxy. An empty proxy means a direct connection.
type PageFetcher interface {
	Fetch(ctx context.Context, url, proxy string) (string, error)
}

// ProxyValidator checks that a proxy can reach the outside world. Both
// methods succeed immediately for an empty proxy.
type ProxyValidator interface {
	Validate(ctx context.Context, proxy string) error
	Describe(ctx context.Context, proxy string) (string, error)
}

// RateExtractor pulls the rendered rate out of a converter page. ok is false
// when the page does not hold one.
type RateExtractor interface {
	Extract(body string) (rate string, ok bool)
}

// ProgressReporter is told about batch progress, one Advance per currency.
type ProgressReporter interface {
	Start(total int, description string)
	Advance()
	Finish()
}
