package listing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RefreshAll reloads independent controllers concurrently and returns the
// first error. A failing controller does not cancel the others.
func RefreshAll(ctx context.Context, controllers ...*Controller) error {
	var g errgroup.Group
	for _, c := range controllers {
		c := c
		g.Go(func() error {
			return c.Refetch(ctx)
		})
	}
	return g.Wait()
}
