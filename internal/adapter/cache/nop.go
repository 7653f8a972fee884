package cache

import "context"

// Nop never stores anything; every lookup misses.
type Nop struct{}

func (Nop) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }

func (Nop) Set(ctx context.Context, key, body string) error { return nil }

func (Nop) ClearExpired(ctx context.Context) error { return nil }
