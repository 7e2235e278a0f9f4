package application

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// shareWork runs fn once per key for all concurrent callers. fn gets a context that keeps the
// caller's values but not its cancellation; each caller still returns early on its own ctx.
func shareWork(ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
