package ports

import (
	"context"
)

// ResponseCache stores raw response bodies keyed by request URL. A miss is
// reported as ok=false with a nil error; errors mean the store itself failed.
type ResponseCache interface {
	Get(ctx context.Context, key string) (body string, ok bool, err error)
	Set(ctx context.Context, key, body string) error
	ClearExpired(ctx context.Context) error
}
