// Package lock serialises work on accounts across processes.
package lock

import (
	"context"
	"slices"
)

// Locker runs fn while holding an exclusive lock on every key.
type Locker interface {
	WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// Noop is a Locker that takes no locks.
type Noop struct{}

func (Noop) WithLock(ctx context.Context, _ []string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Order returns the distinct non-empty keys in ascending order. Acquiring
// locks in this order keeps two transfers over the same pair of accounts from
// deadlocking.
func Order(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
